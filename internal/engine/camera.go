package engine

import "github.com/vovakirdan/tilesim/internal/core"

// Camera scrolls the view to keep a followed actor inside a margin box.
type Camera struct {
	MapBounds core.Rect
	MarginX   float64 // Fraction of the view width kept clear on each side
	MarginY   float64
	Follow    Ref
}

// NewCamera creates a camera clamped to bounds.
func NewCamera(bounds core.Rect, marginX, marginY float64) *Camera {
	return &Camera{MapBounds: bounds, MarginX: marginX, MarginY: marginY}
}

// SnapTo adjusts the scroll position so (x, y) sits inside the follow
// margins of a viewW × viewH view, without scrolling past the map edges.
func (c *Camera) SnapTo(x, y, viewW, viewH int, scrollX, scrollY *int) {
	marginX := int(float64(viewW) * c.MarginX)
	marginY := int(float64(viewH) * c.MarginY)
	left, right := marginX, viewW-marginX
	top, bottom := marginY, viewH-marginY

	switch {
	case x-*scrollX < left:
		*scrollX = max(x-left, c.MapBounds.X)
	case x-*scrollX > right:
		*scrollX = min(x-right, c.MapBounds.Right()-viewW)
	}

	switch {
	case y-*scrollY < top:
		*scrollY = max(y-top, c.MapBounds.Y)
	case y-*scrollY > bottom:
		*scrollY = min(y-bottom, c.MapBounds.Bottom()-viewH)
	}
}

// Fade is a linear alpha transition over a fixed number of ticks.
type Fade struct {
	From    int
	To      int
	Frames  int
	Elapsed int
}

// Active reports whether the fade is still running.
func (f Fade) Active() bool {
	return f.Elapsed < f.Frames
}

// Alpha returns the current alpha in [0, 255].
func (f Fade) Alpha() int {
	if f.Frames <= 0 || f.Elapsed >= f.Frames {
		return core.Clamp(f.To, 0, 255)
	}
	v := f.From + (f.To-f.From)*f.Elapsed/f.Frames
	return core.Clamp(v, 0, 255)
}

func (f *Fade) advance() {
	if f.Active() {
		f.Elapsed++
	}
}
