// Package sprite describes animated actor graphics. Sprites are render-only
// data: frame sizes and timing never feed back into collision.
package sprite

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilesim/internal/core"
)

// MaxAnimationLength is the longest animation, in ticks, a sprite may declare.
const MaxAnimationLength = 0x10000

var (
	ErrEmptyAnimation   = errors.New("sprite: animation with zero length")
	ErrAnimationTooLong = errors.New("sprite: animation too long")
)

// Frame is one cell-based picture of an animation.
type Frame struct {
	Glyph rune
	Color core.Color
}

// Animation is a named sequence of frames with per-frame durations.
type Animation struct {
	Name         string
	Width        int
	Height       int
	Frames       []Frame
	FrameLengths []int // Ticks each frame is shown
	Looping      bool

	frameForTime []int
}

// NewAnimation builds an animation, expanding the frame timing table.
// Frames and FrameLengths must have the same length.
func NewAnimation(name string, frames []Frame, frameLengths []int, looping bool) (*Animation, error) {
	if len(frames) != len(frameLengths) {
		return nil, fmt.Errorf("sprite: animation %q has %d frames but %d lengths",
			name, len(frames), len(frameLengths))
	}

	total := 0
	for _, n := range frameLengths {
		if n < 0 {
			return nil, fmt.Errorf("sprite: animation %q has negative frame length", name)
		}
		total += n
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAnimation, name)
	}
	if total >= MaxAnimationLength {
		return nil, fmt.Errorf("%w: %q", ErrAnimationTooLong, name)
	}

	a := &Animation{
		Name:         name,
		Frames:       frames,
		FrameLengths: frameLengths,
		Looping:      looping,
		frameForTime: make([]int, 0, total),
	}
	for frame, n := range frameLengths {
		for i := 0; i < n; i++ {
			a.frameForTime = append(a.frameForTime, frame)
		}
	}
	return a, nil
}

// TotalLength returns the animation length in ticks.
func (a *Animation) TotalLength() int {
	return len(a.frameForTime)
}

// FrameForTime returns the frame index shown t ticks after the animation
// started. Non-looping animations hold their last frame.
func (a *Animation) FrameForTime(t int) int {
	n := len(a.frameForTime)
	switch {
	case n == 0 || t < 0:
		return 0
	case a.Looping:
		return a.frameForTime[t%n]
	case t >= n:
		return a.frameForTime[n-1]
	default:
		return a.frameForTime[t]
	}
}

// FrameAt returns the frame shown at tick t.
func (a *Animation) FrameAt(t int) Frame {
	if len(a.Frames) == 0 {
		return Frame{}
	}
	return a.Frames[a.FrameForTime(t)]
}

// Sprite is a set of same-sized animations. The first one is the default.
type Sprite struct {
	Name       string
	ID         string
	Width      int
	Height     int
	Animations []*Animation

	byName map[string]*Animation
}

// New creates a sprite with no animations.
func New(name string, width, height int) *Sprite {
	return &Sprite{
		Name:   name,
		ID:     name,
		Width:  width,
		Height: height,
		byName: make(map[string]*Animation),
	}
}

// Add appends an animation. It must match the sprite dimensions.
func (s *Sprite) Add(a *Animation) error {
	if a.Width == 0 && a.Height == 0 {
		a.Width, a.Height = s.Width, s.Height
	}
	if a.Width != s.Width || a.Height != s.Height {
		return fmt.Errorf("sprite: animation %q is %dx%d, sprite %q is %dx%d",
			a.Name, a.Width, a.Height, s.Name, s.Width, s.Height)
	}
	if s.byName == nil {
		s.byName = make(map[string]*Animation)
	}
	if _, exists := s.byName[a.Name]; exists {
		return fmt.Errorf("sprite: duplicate animation %q in %q", a.Name, s.Name)
	}
	s.Animations = append(s.Animations, a)
	s.byName[a.Name] = a
	return nil
}

// Default returns the first animation, or nil for an empty sprite.
func (s *Sprite) Default() *Animation {
	if len(s.Animations) == 0 {
		return nil
	}
	return s.Animations[0]
}

// Animation looks up an animation by name.
func (s *Sprite) Animation(name string) (*Animation, bool) {
	a, ok := s.byName[name]
	return a, ok
}
