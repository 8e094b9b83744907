// Package tilemap holds the static collision geometry of a map: tile sets
// whose tiles carry local collision rectangles, layers that place those
// tiles on a grid, and the map that aggregates all gameplay layers into
// a single collision query surface.
package tilemap

import "github.com/vovakirdan/tilesim/internal/core"

// ChannelDefault is the collision channel used by actors that do not
// request a specific one, and by tiles declared with a plain collision list.
const ChannelDefault = 0

// Tile is one entry of a tile set.
type Tile struct {
	Glyph  rune       // Viewer glyph
	Color  core.Color // Viewer color
	Frames []rune     // Per-frame glyphs of an animated tile set

	// Collision holds the tile-local collision rectangles per channel.
	Collision map[int][]core.Rect
}

// CollisionFor returns the collision rectangles that apply to channel.
func (t *Tile) CollisionFor(channel int) []core.Rect {
	if t == nil || t.Collision == nil {
		return nil
	}
	return t.Collision[channel]
}

// GlyphAt returns the glyph shown in animation frame f.
func (t *Tile) GlyphAt(f int) rune {
	if f < 0 || f >= len(t.Frames) {
		return t.Glyph
	}
	return t.Frames[f]
}

// Solid reports whether the tile has any collision on channel.
func (t *Tile) Solid(channel int) bool {
	return len(t.CollisionFor(channel)) > 0
}

// TileSet is a collection of equally sized tiles, optionally animated.
type TileSet struct {
	Name  string
	ID    string
	TileW int
	TileH int
	Tiles []Tile

	// FrameLengths lists how many ticks each animation frame is shown.
	// Empty means the tile set is static.
	FrameLengths []int
	frameForTime []int
}

// NewTileSet creates an empty tile set with the given tile size.
func NewTileSet(name string, tileW, tileH int) *TileSet {
	return &TileSet{Name: name, ID: name, TileW: tileW, TileH: tileH}
}

// Add appends a tile and returns its index.
func (ts *TileSet) Add(t Tile) int {
	ts.Tiles = append(ts.Tiles, t)
	return len(ts.Tiles) - 1
}

// SetAnimation installs the frame timing table.
func (ts *TileSet) SetAnimation(frameLengths []int) {
	ts.FrameLengths = frameLengths
	ts.frameForTime = ts.frameForTime[:0]
	for frame, n := range frameLengths {
		for i := 0; i < n; i++ {
			ts.frameForTime = append(ts.frameForTime, frame)
		}
	}
}

// FrameForTime returns the animation frame shown at tick t.
func (ts *TileSet) FrameForTime(t int) int {
	if len(ts.frameForTime) == 0 || t < 0 {
		return 0
	}
	return ts.frameForTime[t%len(ts.frameForTime)]
}

// TileRef points at one tile of a tile set.
type TileRef struct {
	Set   *TileSet
	Index int
}

// Tile resolves the reference. A dangling index yields nil.
func (r *TileRef) Tile() *Tile {
	if r == nil || r.Set == nil || r.Index < 0 || r.Index >= len(r.Set.Tiles) {
		return nil
	}
	return &r.Set.Tiles[r.Index]
}
