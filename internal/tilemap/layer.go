package tilemap

import (
	"github.com/vovakirdan/tilesim/internal/core"
)

// BlendMode selects how a layer or sprite is composited by a renderer.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendSubtract
	BlendMultiply
)

// String returns a human-readable name for the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendSubtract:
		return "subtract"
	case BlendMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// ParseBlendMode maps a blend mode name to its value.
func ParseBlendMode(name string) (BlendMode, bool) {
	switch name {
	case "", "normal":
		return BlendNormal, true
	case "add":
		return BlendAdd, true
	case "subtract":
		return BlendSubtract, true
	case "multiply":
		return BlendMultiply, true
	default:
		return BlendNormal, false
	}
}

// ParallaxNone is the 8.8 parallax factor of a layer that scrolls with the camera.
const ParallaxNone = 0x100

// Layer is a width × height grid of optional tile references.
// Effect layers are decorative (parallax, auto-scroll) and never collide.
type Layer struct {
	Name   string
	ID     string
	Width  int // Width in tiles
	Height int // Height in tiles
	TileW  int // Tile width in pixels
	TileH  int // Tile height in pixels
	Tiles  []*TileRef

	Effect      bool
	Blend       BlendMode
	Alpha       uint8
	ParallaxX   int
	ParallaxY   int
	AutoScrollX int
	AutoScrollY int
}

// NewLayer creates an empty gameplay layer.
func NewLayer(name string, width, height, tileW, tileH int) *Layer {
	return &Layer{
		Name:      name,
		ID:        name,
		Width:     width,
		Height:    height,
		TileW:     tileW,
		TileH:     tileH,
		Tiles:     make([]*TileRef, width*height),
		ParallaxX: ParallaxNone,
		ParallaxY: ParallaxNone,
	}
}

// PixelW returns the layer width in pixels.
func (l *Layer) PixelW() int {
	return l.Width * l.TileW
}

// PixelH returns the layer height in pixels.
func (l *Layer) PixelH() int {
	return l.Height * l.TileH
}

// Tile returns the tile reference at grid cell (x, y), or nil.
func (l *Layer) Tile(x, y int) *TileRef {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return nil
	}
	return l.Tiles[y*l.Width+x]
}

// SetTile places ref at grid cell (x, y). Out-of-range cells are ignored.
func (l *Layer) SetTile(x, y int, ref *TileRef) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	l.Tiles[y*l.Width+x] = ref
}

// Resize changes the grid dimensions, keeping the overlapping region.
func (l *Layer) Resize(width, height int) {
	tiles := make([]*TileRef, width*height)
	copyW := min(width, l.Width)
	copyH := min(height, l.Height)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			tiles[y*width+x] = l.Tiles[y*l.Width+x]
		}
	}
	l.Width = width
	l.Height = height
	l.Tiles = tiles
}

// forEachCollider calls fn with the world-space collision rects of every tile
// in the inclusive cell range, stopping early when fn returns false.
func (l *Layer) forEachCollider(left, top, right, bottom, channel int, fn func(r core.Rect) bool) {
	left = max(left, 0)
	top = max(top, 0)
	right = min(right, l.Width-1)
	bottom = min(bottom, l.Height-1)

	for ty := top; ty <= bottom; ty++ {
		for tx := left; tx <= right; tx++ {
			tile := l.Tile(tx, ty).Tile()
			for _, local := range tile.CollisionFor(channel) {
				if !fn(local.Offset(tx*l.TileW, ty*l.TileH)) {
					return
				}
			}
		}
	}
}

// CheckCollision reports whether rect overlaps any collision rect of the
// layer. A rect reaching outside the grid always collides.
func (l *Layer) CheckCollision(rect core.Rect, channel int) bool {
	if rect.Empty() {
		return false
	}

	left := core.FloorDiv(rect.X, l.TileW)
	right := core.FloorDiv(rect.Right()-1, l.TileW)
	top := core.FloorDiv(rect.Y, l.TileH)
	bottom := core.FloorDiv(rect.Bottom()-1, l.TileH)

	if left < 0 || right >= l.Width || top < 0 || bottom >= l.Height {
		return true
	}

	hit := false
	l.forEachCollider(left, top, right, bottom, channel, func(r core.Rect) bool {
		hit = core.IsColliding(r, rect)
		return !hit
	})
	return hit
}

// SweepCollisionX moves rect horizontally towards finalX and returns the
// most restrictive stopping x, or ok == false when nothing is hit.
// Leaving the grid stops the rect at the boundary.
func (l *Layer) SweepCollisionX(rect core.Rect, finalX, channel int) (x int, ok bool) {
	if rect.Empty() {
		return 0, false
	}

	left := core.FloorDiv(min(rect.X, finalX), l.TileW)
	right := core.FloorDiv(max(rect.X, finalX)+rect.W-1, l.TileW)
	top := core.FloorDiv(rect.Y, l.TileH)
	bottom := core.FloorDiv(rect.Bottom()-1, l.TileH)

	if top < 0 || bottom >= l.Height {
		return rect.X, true
	}

	revised := finalX
	if left < 0 {
		if rect.X < 0 {
			return rect.X, true
		}
		revised, ok = 0, true
	}
	if right >= l.Width {
		if rect.Right() > l.PixelW() {
			return rect.X, true
		}
		revised, ok = l.PixelW()-rect.W, true
	}

	l.forEachCollider(left, top, right, bottom, channel, func(r core.Rect) bool {
		if stop, hit := core.SweepXBounded(r, rect, finalX, revised); hit {
			revised, ok = stop, true
		}
		return true
	})

	if !ok {
		return 0, false
	}
	return revised, true
}

// SweepCollisionY is the vertical counterpart of SweepCollisionX.
func (l *Layer) SweepCollisionY(rect core.Rect, finalY, channel int) (y int, ok bool) {
	if rect.Empty() {
		return 0, false
	}

	left := core.FloorDiv(rect.X, l.TileW)
	right := core.FloorDiv(rect.Right()-1, l.TileW)
	top := core.FloorDiv(min(rect.Y, finalY), l.TileH)
	bottom := core.FloorDiv(max(rect.Y, finalY)+rect.H-1, l.TileH)

	if left < 0 || right >= l.Width {
		return rect.Y, true
	}

	revised := finalY
	if top < 0 {
		if rect.Y < 0 {
			return rect.Y, true
		}
		revised, ok = 0, true
	}
	if bottom >= l.Height {
		if rect.Bottom() > l.PixelH() {
			return rect.Y, true
		}
		revised, ok = l.PixelH()-rect.H, true
	}

	l.forEachCollider(left, top, right, bottom, channel, func(r core.Rect) bool {
		if stop, hit := core.SweepYBounded(r, rect, finalY, revised); hit {
			revised, ok = stop, true
		}
		return true
	})

	if !ok {
		return 0, false
	}
	return revised, true
}
