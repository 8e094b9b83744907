package actors

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// Button and axis names the player reacts to.
const (
	ButtonLeft  = "left"
	ButtonRight = "right"
	ButtonJump  = "jump"
	AxisX       = "x"
)

const (
	playerHealth     = 3
	invulnerableTime = 60
	deathFadeFrames  = 30
	blinkAlpha       = 8
)

func init() {
	registry.Register("player", "Player", NewPlayer)
}

// Player is the controlled actor. It walks, jumps, collects coins and
// loses health on contact with hazards.
type Player struct {
	engine.Base

	Coins int

	left, right bool
	axis        float64
	jumpQueued  bool
	invuln      int
}

// NewPlayer creates a player from a spawn entry. Data keys: "health".
func NewPlayer(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup) (engine.Actor, error) {
	health, err := intData(spawn.Data, "health", playerHealth)
	if err != nil {
		return nil, err
	}

	p := &Player{Base: engine.NewBase(spawn.X, spawn.Y)}
	p.State.Health = health
	engine.SetCollisionBounds(p, footprint(spawn))
	engine.AddSprite(p, pickSprite(spawn, sprites, playerSprite()), 0, 0)
	return p, nil
}

func playerSprite() *sprite.Sprite {
	s := glyphSprite("player", PlayerGlyph, core.ColorBrightYellow)
	run, err := sprite.NewAnimation("run", []sprite.Frame{
		{Glyph: PlayerRunGlyph, Color: core.ColorBrightYellow},
		{Glyph: PlayerGlyph, Color: core.ColorBrightYellow},
	}, []int{6, 6}, true)
	if err == nil {
		_ = s.Add(run)
	}
	return s
}

// Init takes input focus and the camera.
func (p *Player) Init(w *engine.World) {
	w.SetControlledActor(p.State.Ref())
	w.Follow(p.State.Ref())
}

// Invulnerable reports whether recent damage still protects the player.
func (p *Player) Invulnerable() bool {
	return p.invuln > 0
}

// Hurt takes amount health unless the player is invulnerable.
func (p *Player) Hurt(amount int, w *engine.World) {
	if p.invuln > 0 || p.State.Health <= 0 {
		return
	}
	engine.AdjustHealth(p, -amount, w)
	p.invuln = invulnerableTime
}

func (p *Player) direction() float64 {
	switch {
	case p.left && !p.right:
		return -1
	case p.right && !p.left:
		return 1
	default:
		return p.axis
	}
}

func (p *Player) Update(w *engine.World) {
	info := p.Info()
	grounded := onGround(info, w)

	info.VelocityX = int(p.direction() * WalkSpeed)
	if p.jumpQueued && grounded {
		info.VelocityY = -JumpSpeed
		grounded = false
	}
	p.jumpQueued = false
	fall(info, grounded)

	if info.VelocityX != 0 {
		engine.StartAnimation(p, "run")
	} else {
		engine.StartAnimation(p, "idle")
	}

	if p.invuln > 0 {
		p.invuln--
		if p.invuln%8 < 4 {
			engine.SetAlpha(p, blinkAlpha)
		} else {
			engine.SetAlpha(p, 0)
		}
		if p.invuln == 0 {
			engine.SetAlpha(p, 0)
		}
	}
}

func (p *Player) OnCollideWithActor(other engine.Ref, w *engine.World) {
	var stomp, hurt bool
	w.WithMut(other, func(a engine.Actor) {
		switch o := a.(type) {
		case *Crate:
			o.Push(int(p.direction()))
		case *Walker:
			if o.State.Destroyed {
				return
			}
			pb, _ := p.State.Bounds()
			wb, ok := o.State.Bounds()
			if ok && pb.Bottom() <= wb.Y {
				engine.AdjustHealth(o, -o.State.Health, w)
				stomp = true
				return
			}
			hurt = true
		}
	})

	switch {
	case stomp:
		p.State.VelocityY = -JumpSpeed / 2
	case hurt:
		p.Hurt(1, w)
	}
}

func (p *Player) OnDeath(w *engine.World) {
	engine.Destroy(p)
	w.Queue(engine.StartFade{From: 0, To: 255, Frames: deathFadeFrames})
}

func (p *Player) OnButtonDown(name string, _ *engine.World) {
	switch name {
	case ButtonLeft:
		p.left = true
	case ButtonRight:
		p.right = true
	case ButtonJump:
		p.jumpQueued = true
	}
}

func (p *Player) OnButtonUp(name string, _ *engine.World) {
	switch name {
	case ButtonLeft:
		p.left = false
	case ButtonRight:
		p.right = false
	}
}

func (p *Player) OnAxisChanged(name string, value float64, _ *engine.World) {
	if name == AxisX {
		p.axis = value
	}
}
