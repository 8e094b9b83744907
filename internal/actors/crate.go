package actors

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

const pushSpeed = WalkSpeed / 2

func init() {
	registry.Register("crate", "Crate", NewCrate)
}

// Crate is a blocking box that falls and can be pushed sideways.
type Crate struct {
	engine.Base

	push int
}

// NewCrate creates a crate from a spawn entry.
func NewCrate(spawn tilemap.ActorSpawn, sprites registry.SpriteLookup) (engine.Actor, error) {
	c := &Crate{Base: engine.NewBase(spawn.X, spawn.Y)}
	c.State.BlockingCollision = true
	engine.SetCollisionBounds(c, footprint(spawn))
	engine.AddSprite(c, pickSprite(spawn, sprites, glyphSprite("crate", CrateGlyph, core.ColorOrange)), 0, 0)
	return c, nil
}

// Push nudges the crate one step in dir (-1, 0 or 1) on its next update.
func (c *Crate) Push(dir int) {
	c.push = core.Clamp(dir, -1, 1)
}

func (c *Crate) Update(w *engine.World) {
	info := c.Info()
	info.VelocityX = c.push * pushSpeed
	c.push = 0
	fall(info, onGround(info, w))
}
