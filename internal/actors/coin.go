package actors

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

func init() {
	registry.Register("coin", "Coin", NewCoin)
}

// Coin is a pickup. It credits its value to the first player it overlaps
// and disappears.
type Coin struct {
	engine.Base

	Value int
}

// NewCoin creates a coin from a spawn entry. Data keys: "value".
func NewCoin(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup) (engine.Actor, error) {
	value, err := intData(spawn.Data, "value", 1)
	if err != nil {
		return nil, err
	}

	c := &Coin{Base: engine.NewBase(spawn.X, spawn.Y), Value: value}
	engine.SetCollisionBounds(c, footprint(spawn))
	engine.AddSprite(c, pickSprite(spawn, sprites, glyphSprite("coin", CoinGlyph, core.ColorYellow)), 0, 0)
	return c, nil
}

func (c *Coin) OnCollideWithActor(other engine.Ref, w *engine.World) {
	if c.State.Destroyed {
		return
	}
	w.WithMut(other, func(a engine.Actor) {
		if p, ok := a.(*Player); ok && !p.State.Destroyed {
			p.Coins += c.Value
			engine.Destroy(c)
		}
	})
}
