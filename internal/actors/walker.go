package actors

import (
	"fmt"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

const walkerSpeed = WalkSpeed / 3

func init() {
	registry.Register("walker", "Walker", NewWalker)
}

// Walker patrols back and forth, turning at walls, other blockers and
// ledges. Touching it from the side hurts; landing on it kills it.
type Walker struct {
	engine.Base

	Dir int
}

// NewWalker creates a walker from a spawn entry. Data keys: "dir" (-1 or 1,
// 0 to pick one from the world's random source on Init), "health".
func NewWalker(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup) (engine.Actor, error) {
	dir, err := intData(spawn.Data, "dir", -1)
	if err != nil {
		return nil, err
	}
	if dir < -1 || dir > 1 {
		return nil, fmt.Errorf("field %q: must be -1, 0 or 1, got %d", "dir", dir)
	}
	health, err := intData(spawn.Data, "health", 1)
	if err != nil {
		return nil, err
	}

	wk := &Walker{Base: engine.NewBase(spawn.X, spawn.Y), Dir: dir}
	wk.State.Health = health
	wk.State.BlockingCollision = true
	engine.SetCollisionBounds(wk, footprint(spawn))
	engine.AddSprite(wk, pickSprite(spawn, sprites, glyphSprite("walker", WalkerGlyph, core.ColorRed)), 0, 0)
	return wk, nil
}

func (wk *Walker) Init(w *engine.World) {
	if wk.Dir == 0 {
		wk.Dir = 1 - 2*w.Rand().Intn(2)
	}
}

// ledgeAhead reports whether the next step would walk off solid ground.
func (wk *Walker) ledgeAhead(w *engine.World) bool {
	b, ok := wk.State.Bounds()
	if !ok {
		return false
	}
	x := b.X - 1
	if wk.Dir > 0 {
		x = b.Right()
	}
	ahead := core.NewRect(x, b.Bottom(), 1, 1)
	return !w.CheckSolid(ahead, wk.State.CollisionChannel, wk.State.Ref())
}

func (wk *Walker) Update(w *engine.World) {
	info := wk.Info()
	grounded := onGround(info, w)
	if grounded && wk.ledgeAhead(w) {
		wk.Dir = -wk.Dir
	}
	info.VelocityX = wk.Dir * walkerSpeed
	fall(info, grounded)
}

// AfterMove turns around when the horizontal step was blocked.
func (wk *Walker) AfterMove(*engine.World) {
	if wk.State.VelocityX == 0 {
		wk.Dir = -wk.Dir
	}
}

func (wk *Walker) OnCollideWithActor(other engine.Ref, w *engine.World) {
	w.WithMut(other, func(a engine.Actor) {
		if p, ok := a.(*Player); ok {
			p.Hurt(1, w)
		}
	})
}

func (wk *Walker) OnDeath(*engine.World) {
	engine.Destroy(wk)
}
