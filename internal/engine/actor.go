// Package engine runs the per-tick simulation: actors with sub-pixel motion,
// swept collision against the tile map and against each other, a deferred
// command queue, and the World that orchestrates one tick at a time.
//
// Actor kinds implement Actor, usually by embedding Base and overriding the
// hooks they care about. Movement, collision and health are free functions
// over Actor so every kind shares one implementation.
package engine

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// Info is the kinematic and render state every actor carries.
type Info struct {
	X, Y                 int   // Pixel position
	SubpixelX, SubpixelY uint8 // 1/256 pixel fraction
	VelocityX, VelocityY int   // 16.8 fixed point, per tick

	// CollisionBounds is the footprint relative to (X, Y). Nil means the
	// actor has no footprint: it is never swept or reported by overlap scans.
	CollisionBounds   *core.Rect
	CollisionChannel  int
	BlockingCollision bool

	Sprites []SpriteAttachment

	Destroyed bool
	Health    int

	ref Ref
}

// NewInfo returns the state of an actor placed at (x, y).
func NewInfo(x, y int) Info {
	return Info{X: x, Y: y, CollisionChannel: tilemap.ChannelDefault}
}

// Ref returns the handle the actor was stored under, or the zero Ref.
func (i *Info) Ref() Ref {
	return i.ref
}

// Bounds returns the world-space collision rect at the current position.
func (i *Info) Bounds() (core.Rect, bool) {
	if i.CollisionBounds == nil {
		return core.Rect{}, false
	}
	return i.CollisionBounds.Offset(i.X, i.Y), true
}

// Center returns the point the camera follows: the position shifted by half
// the collision size.
func (i *Info) Center() (int, int) {
	x, y := i.X, i.Y
	if b := i.CollisionBounds; b != nil {
		x += b.W / 2
		y += b.H / 2
	}
	return x, y
}

// Actor is the behavior contract of a simulated entity.
//
// All hooks run on the simulation goroutine inside World.Step. An actor is
// exclusively borrowed while its hooks run; reaching back into it through
// the world during that time is skipped.
type Actor interface {
	Info() *Info

	Init(w *World)
	Update(w *World)
	BeforeMove(w *World)
	AfterMove(w *World)

	OnCollideWithWorld(w *World)
	OnCollideWithActor(other Ref, w *World)
	OnDeath(w *World)

	OnButtonDown(name string, w *World)
	OnButtonUp(name string, w *World)
	OnAxisChanged(name string, value float64, w *World)
}

// Base implements every Actor hook as a no-op. Embed it and override the
// hooks a kind needs.
type Base struct {
	State Info
}

// NewBase returns a Base positioned at (x, y).
func NewBase(x, y int) Base {
	return Base{State: NewInfo(x, y)}
}

func (b *Base) Info() *Info { return &b.State }

func (b *Base) Init(*World) {}
func (b *Base) Update(*World) {}
func (b *Base) BeforeMove(*World) {}
func (b *Base) AfterMove(*World) {}
func (b *Base) OnCollideWithWorld(*World) {}
func (b *Base) OnCollideWithActor(Ref, *World) {}
func (b *Base) OnDeath(*World) {}
func (b *Base) OnButtonDown(string, *World) {}
func (b *Base) OnButtonUp(string, *World) {}
func (b *Base) OnAxisChanged(string, float64, *World) {}

// SpriteAttachment is a sprite drawn at an offset from the actor position.
type SpriteAttachment struct {
	Sprite    *sprite.Sprite
	Animation *sprite.Animation
	Frame     int // Ticks since Animation started
	OffsetX   int
	OffsetY   int
	Blend     tilemap.BlendMode
	Alpha     uint8
}

// CurrentFrame returns the frame the renderer should draw.
func (s *SpriteAttachment) CurrentFrame() sprite.Frame {
	if s.Animation == nil {
		return sprite.Frame{}
	}
	return s.Animation.FrameAt(s.Frame)
}

// AddSprite attaches s with its default animation and normal blending.
func AddSprite(a Actor, s *sprite.Sprite, offsetX, offsetY int) {
	AddSpriteWithBlending(a, s, offsetX, offsetY, tilemap.BlendNormal, 0)
}

// AddSpriteWithBlending attaches s with an explicit blend mode and alpha.
func AddSpriteWithBlending(a Actor, s *sprite.Sprite, offsetX, offsetY int, blend tilemap.BlendMode, alpha uint8) {
	info := a.Info()
	info.Sprites = append(info.Sprites, SpriteAttachment{
		Sprite:    s,
		Animation: s.Default(),
		OffsetX:   offsetX,
		OffsetY:   offsetY,
		Blend:     blend,
		Alpha:     alpha,
	})
}

// StartAnimation switches every attached sprite that has an animation called
// name. A sprite already playing that exact animation keeps its frame counter.
func StartAnimation(a Actor, name string) {
	info := a.Info()
	for i := range info.Sprites {
		s := &info.Sprites[i]
		anim, ok := s.Sprite.Animation(name)
		if !ok || anim == s.Animation {
			continue
		}
		s.Animation = anim
		s.Frame = 0
	}
}

// SetAlpha sets the alpha of every attached sprite.
func SetAlpha(a Actor, alpha uint8) {
	info := a.Info()
	for i := range info.Sprites {
		info.Sprites[i].Alpha = alpha
	}
}

// AdjustAlpha adds delta to every attached sprite's alpha, saturating at
// 0 and 255.
func AdjustAlpha(a Actor, delta int) {
	info := a.Info()
	for i := range info.Sprites {
		s := &info.Sprites[i]
		s.Alpha = uint8(core.Clamp(int(s.Alpha)+delta, 0, 255))
	}
}

// SetCollisionBounds gives the actor a footprint relative to its position.
func SetCollisionBounds(a Actor, bounds core.Rect) {
	a.Info().CollisionBounds = &bounds
}

// Destroy marks the actor for removal. It stays in the world until the
// orchestrator next reaches it.
func Destroy(a Actor) {
	a.Info().Destroyed = true
}

// advanceSprites moves every sprite one tick forward.
func advanceSprites(info *Info) {
	for i := range info.Sprites {
		info.Sprites[i].Frame++
	}
}
