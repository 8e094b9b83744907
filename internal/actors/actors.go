// Package actors contains the concrete actor kinds placed on maps: the
// player, crates, coins, spikes and walkers. Each kind registers itself in
// init() so maps can refer to it by type name.
package actors

import (
	"fmt"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// Movement constants in 16.8 fixed point per tick.
const (
	Gravity   = 0x40
	MaxFall   = 4 << core.FixedShift
	WalkSpeed = 0x180
	JumpSpeed = 4 << core.FixedShift
)

// Visual characters for the built-in sprites
const (
	PlayerGlyph    = '@'
	PlayerRunGlyph = '&'
	CrateGlyph     = '▣'
	CoinGlyph      = '○'
	SpikesGlyph    = '▲'
	WalkerGlyph    = 'Ѫ'
)

// damageable is implemented by kinds that react to hits with their own rules.
type damageable interface {
	Hurt(amount int, w *engine.World)
}

// glyphSprite builds a one-cell sprite with a single static animation.
func glyphSprite(id string, glyph rune, color core.Color) *sprite.Sprite {
	s := sprite.New(id, 1, 1)
	anim, err := sprite.NewAnimation("idle", []sprite.Frame{{Glyph: glyph, Color: color}}, []int{1}, true)
	if err != nil {
		panic(fmt.Sprintf("actors: built-in sprite %q: %v", id, err))
	}
	if err := s.Add(anim); err != nil {
		panic(fmt.Sprintf("actors: built-in sprite %q: %v", id, err))
	}
	return s
}

// pickSprite returns the sprite named by the spawn's "sprite" field, else
// the one registered under the kind ID, else fallback.
func pickSprite(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup, fallback *sprite.Sprite) *sprite.Sprite {
	if sprites == nil {
		return fallback
	}
	if id, ok := spawn.Data["sprite"].(string); ok {
		if s, ok := sprites(id); ok {
			return s
		}
	}
	if s, ok := sprites(spawn.Type); ok {
		return s
	}
	return fallback
}

// intData reads an integer field from spawn data. YAML decodes numbers as
// int, but float64 is accepted too.
func intData(data map[string]any, key string, def int) (int, error) {
	v, ok := data[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("field %q: expected a number, got %T", key, v)
	}
}

// footprint returns the spawn size, defaulting to one tile.
func footprint(spawn tilemap.ActorSpawn) core.Rect {
	w, h := spawn.W, spawn.H
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 8
	}
	return core.NewRect(0, 0, w, h)
}

// below returns the one pixel tall strip under an actor's footprint.
func below(info *engine.Info) (core.Rect, bool) {
	b, ok := info.Bounds()
	if !ok {
		return core.Rect{}, false
	}
	return core.NewRect(b.X, b.Bottom(), b.W, 1), true
}

// onGround reports whether something solid is right under the actor.
func onGround(info *engine.Info, w *engine.World) bool {
	strip, ok := below(info)
	return ok && w.CheckSolid(strip, info.CollisionChannel, info.Ref())
}

// fall applies gravity unless the actor is standing on something.
func fall(info *engine.Info, grounded bool) {
	if grounded {
		if info.VelocityY > 0 {
			info.VelocityY = 0
		}
		return
	}
	info.VelocityY = min(info.VelocityY+Gravity, MaxFall)
}
