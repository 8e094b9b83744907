package actors

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

const spikeCooldown = 30

func init() {
	registry.Register("spikes", "Spikes", NewSpikes)
}

// Spikes damage whatever stands in them. A target is hit at most once per
// cooldown period.
type Spikes struct {
	engine.Base

	Damage   int
	lastHits map[engine.Ref]int
}

// NewSpikes creates a strip of spikes from a spawn entry. Data keys: "damage".
func NewSpikes(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup) (engine.Actor, error) {
	damage, err := intData(spawn.Data, "damage", 1)
	if err != nil {
		return nil, err
	}

	s := &Spikes{
		Base:     engine.NewBase(spawn.X, spawn.Y),
		Damage:   damage,
		lastHits: make(map[engine.Ref]int),
	}
	bounds := footprint(spawn)
	engine.SetCollisionBounds(s, bounds)

	spr := pickSprite(spawn, sprites, glyphSprite("spikes", SpikesGlyph, core.ColorGray))
	for x := 0; x < bounds.W; x += 8 {
		engine.AddSprite(s, spr, x, 0)
	}
	return s, nil
}

func (s *Spikes) OnCollideWithActor(other engine.Ref, w *engine.World) {
	if last, ok := s.lastHits[other]; ok && w.Frame()-last < spikeCooldown {
		return
	}
	hit := w.WithMut(other, func(a engine.Actor) {
		if d, ok := a.(damageable); ok {
			d.Hurt(s.Damage, w)
			return
		}
		engine.AdjustHealth(a, -s.Damage, w)
	})
	if hit {
		s.lastHits[other] = w.Frame()
	}
}
