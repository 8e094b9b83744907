// Package core provides the geometry and fixed-point primitives shared by the
// tile map, the actor engine and the viewer. It has no external dependencies
// so the collision math stays pure and testable.
package core

import "fmt"

// Rect is an axis-aligned bounding rectangle in world pixels.
// Intervals are half-open: a rect covers [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height, never negative
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rect has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns the rect translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return IsColliding(r, other)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.X, r.Y, r.W, r.H)
}

// IsColliding reports whether a and b overlap on both axes.
// Touching edges do not count and zero-area rects never collide.
func IsColliding(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return overlapsX(a, b) && overlapsY(a, b)
}

func overlapsX(a, b Rect) bool {
	return b.X < a.Right() && a.X < b.Right()
}

func overlapsY(a, b Rect) bool {
	return b.Y < a.Bottom() && a.Y < b.Bottom()
}

// SweepX moves rect horizontally from rect.X towards finalX while static
// stays put, and returns the x at which rect first touches static.
// ok is false when the sweep is unobstructed. If the two already overlap
// the start x is returned unchanged.
func SweepX(static, rect Rect, finalX int) (x int, ok bool) {
	return SweepXBounded(static, rect, finalX, finalX)
}

// SweepXBounded is SweepX with an explicit running bound. A stop is only
// reported when it is more restrictive than bound, which lets callers fold
// several obstacles into a single narrowing sweep.
func SweepXBounded(static, rect Rect, finalX, bound int) (x int, ok bool) {
	if static.Empty() || rect.Empty() {
		return 0, false
	}
	if !overlapsY(static, rect) {
		return 0, false
	}
	if overlapsX(static, rect) {
		return rect.X, true
	}

	if rect.Right() <= static.X && finalX > rect.X {
		if stop := static.X - rect.W; stop < bound {
			return stop, true
		}
	} else if rect.X >= static.Right() && finalX < rect.X {
		if stop := static.Right(); stop > bound {
			return stop, true
		}
	}
	return 0, false
}

// SweepY is the vertical counterpart of SweepX.
func SweepY(static, rect Rect, finalY int) (y int, ok bool) {
	return SweepYBounded(static, rect, finalY, finalY)
}

// SweepYBounded is the vertical counterpart of SweepXBounded.
func SweepYBounded(static, rect Rect, finalY, bound int) (y int, ok bool) {
	if static.Empty() || rect.Empty() {
		return 0, false
	}
	if !overlapsX(static, rect) {
		return 0, false
	}
	if overlapsY(static, rect) {
		return rect.Y, true
	}

	if rect.Bottom() <= static.Y && finalY > rect.Y {
		if stop := static.Y - rect.H; stop < bound {
			return stop, true
		}
	} else if rect.Y >= static.Bottom() && finalY < rect.Y {
		if stop := static.Bottom(); stop > bound {
			return stop, true
		}
	}
	return 0, false
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FloorDiv divides rounding towards negative infinity, so tile indices of
// negative pixel coordinates land outside the grid.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
