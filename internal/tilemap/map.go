package tilemap

import "github.com/vovakirdan/tilesim/internal/core"

// ActorSpawn describes an actor placed on the map. Coordinates are pixels.
type ActorSpawn struct {
	X, Y int
	W, H int
	Type string
	Data map[string]any
}

// Map is an ordered stack of layers plus the actors placed on it.
type Map struct {
	Name            string
	ID              string
	BackgroundColor core.Color
	Layers          []*Layer
	MainLayer       int // Layer actors are drawn on; -1 when unset
	Actors          []ActorSpawn
}

// New creates an empty map.
func New(name string) *Map {
	return &Map{Name: name, ID: name, MainLayer: -1}
}

// AddLayer appends a layer. The first gameplay layer added becomes the
// main layer if none is set.
func (m *Map) AddLayer(l *Layer) {
	m.Layers = append(m.Layers, l)
	if m.MainLayer < 0 && !l.Effect {
		m.MainLayer = len(m.Layers) - 1
	}
}

// Main returns the main layer, or nil.
func (m *Map) Main() *Layer {
	if m.MainLayer < 0 || m.MainLayer >= len(m.Layers) {
		return nil
	}
	return m.Layers[m.MainLayer]
}

// Bounds returns the pixel extent of the first gameplay layer.
func (m *Map) Bounds() (core.Rect, bool) {
	for _, l := range m.Layers {
		if !l.Effect {
			return core.NewRect(0, 0, l.PixelW(), l.PixelH()), true
		}
	}
	return core.Rect{}, false
}

// CheckCollision reports whether rect is blocked by any gameplay layer.
func (m *Map) CheckCollision(rect core.Rect, channel int) bool {
	for _, l := range m.Layers {
		if l.Effect {
			continue
		}
		if l.CheckCollision(rect, channel) {
			return true
		}
	}
	return false
}

// CheckPoint reports whether the pixel (x, y) is blocked.
func (m *Map) CheckPoint(x, y, channel int) bool {
	return m.CheckCollision(core.NewRect(x, y, 1, 1), channel)
}

// SweepCollisionX sweeps rect horizontally to finalX across every gameplay
// layer. Each layer sweeps towards the bound left by the previous one, so
// the allowed travel only ever shrinks. A zero-distance sweep reports no
// collision without touching any geometry.
func (m *Map) SweepCollisionX(rect core.Rect, finalX, channel int) (x int, ok bool) {
	if rect.X == finalX {
		return 0, false
	}

	revised := finalX
	for _, l := range m.Layers {
		if l.Effect {
			continue
		}
		if stop, hit := l.SweepCollisionX(rect, revised, channel); hit {
			revised, ok = stop, true
		}
	}
	return revised, ok
}

// SweepCollisionY is the vertical counterpart of SweepCollisionX.
func (m *Map) SweepCollisionY(rect core.Rect, finalY, channel int) (y int, ok bool) {
	if rect.Y == finalY {
		return 0, false
	}

	revised := finalY
	for _, l := range m.Layers {
		if l.Effect {
			continue
		}
		if stop, hit := l.SweepCollisionY(rect, revised, channel); hit {
			revised, ok = stop, true
		}
	}
	return revised, ok
}
