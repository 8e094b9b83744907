package engine

import (
	"math"

	"github.com/vovakirdan/tilesim/internal/core"
)

// MoveKind describes what stopped a move.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveCollidedWithWorld
	MoveCollidedWithActor
)

// String returns a human-readable name for the move kind.
func (k MoveKind) String() string {
	switch k {
	case MoveNone:
		return "None"
	case MoveCollidedWithWorld:
		return "CollidedWithWorld"
	case MoveCollidedWithActor:
		return "CollidedWithActor"
	default:
		return "Unknown"
	}
}

// MoveResult is the outcome of MoveWithCollision. Actor is set only for
// MoveCollidedWithActor.
type MoveResult struct {
	Kind  MoveKind
	Actor Ref
}

// MoveWithCollision integrates the actor's velocity for one tick.
//
// The X axis is fully resolved before Y: tile map sweep, then a sweep
// against each other blocking actor in list order, each one narrowing the
// target further. Any stop snaps the actor to a whole pixel and zeroes the
// velocity on that axis. The last stop on the last axis decides the result,
// so an actor stop is reported over a world stop.
func MoveWithCollision(a Actor, w *World) MoveResult {
	info := a.Info()

	fullX := core.ToFixed(info.X, info.SubpixelX) + core.Fixed(info.VelocityX)
	fullY := core.ToFixed(info.Y, info.SubpixelY) + core.Fixed(info.VelocityY)
	newX := fullX.Pixel()
	newY := fullY.Pixel()

	var result MoveResult
	if cb := info.CollisionBounds; cb != nil {
		bounds := cb.Offset(info.X, info.Y)

		// Horizontal
		if newX != info.X {
			if m := w.Map(); m != nil {
				if x, ok := m.SweepCollisionX(bounds, newX+cb.X, info.CollisionChannel); ok {
					newX = x - cb.X
					fullX = core.PixelsToFixed(newX)
					info.VelocityX = 0
					result = MoveResult{Kind: MoveCollidedWithWorld}
				}
			}
			w.eachBlocker(info.ref, func(other Ref, ob core.Rect) {
				if x, ok := core.SweepX(ob, bounds, newX+cb.X); ok {
					newX = x - cb.X
					fullX = core.PixelsToFixed(newX)
					info.VelocityX = 0
					result = MoveResult{Kind: MoveCollidedWithActor, Actor: other}
				}
			})
		}

		bounds.X = newX + cb.X

		// Vertical
		if newY != info.Y {
			if m := w.Map(); m != nil {
				if y, ok := m.SweepCollisionY(bounds, newY+cb.Y, info.CollisionChannel); ok {
					newY = y - cb.Y
					fullY = core.PixelsToFixed(newY)
					info.VelocityY = 0
					result = MoveResult{Kind: MoveCollidedWithWorld}
				}
			}
			w.eachBlocker(info.ref, func(other Ref, ob core.Rect) {
				if y, ok := core.SweepY(ob, bounds, newY+cb.Y); ok {
					newY = y - cb.Y
					fullY = core.PixelsToFixed(newY)
					info.VelocityY = 0
					result = MoveResult{Kind: MoveCollidedWithActor, Actor: other}
				}
			})
		}
	}

	info.X, info.SubpixelX = fullX.Split()
	info.Y, info.SubpixelY = fullY.Split()
	return result
}

// CheckForActorCollision returns every other actor whose footprint overlaps
// a's footprint at its current position, blocking or not. Actors destroyed
// earlier in the tick are still listed until the tick ends.
func CheckForActorCollision(a Actor, w *World) []Ref {
	bounds, ok := a.Info().Bounds()
	if !ok {
		return nil
	}

	var hits []Ref
	self := a.Info().ref
	for _, r := range w.actors {
		if r == self {
			continue
		}
		w.arena.With(r, func(other Actor) {
			if ob, ok := other.Info().Bounds(); ok && core.IsColliding(bounds, ob) {
				hits = append(hits, r)
			}
		})
	}
	return hits
}

// ApplyMove runs the movement step with its hooks: BeforeMove, the swept
// move, one collision callback for the sweep result, one OnCollideWithActor
// per overlapping actor, then AfterMove. An actor stopped by another and
// overlapping it is told twice.
func ApplyMove(a Actor, w *World) {
	a.BeforeMove(w)

	switch res := MoveWithCollision(a, w); res.Kind {
	case MoveCollidedWithWorld:
		w.stats.WorldHits++
		a.OnCollideWithWorld(w)
	case MoveCollidedWithActor:
		w.stats.ActorHits++
		a.OnCollideWithActor(res.Actor, w)
	}

	for _, other := range CheckForActorCollision(a, w) {
		w.stats.Overlaps++
		a.OnCollideWithActor(other, w)
	}

	a.AfterMove(w)
}

// Tick runs one simulation step of a: Update then ApplyMove.
func Tick(a Actor, w *World) {
	a.Update(w)
	ApplyMove(a, w)
}

// AdjustHealth adds amount to the actor's health. Dead actors (health <= 0)
// are left alone. OnDeath fires on the call that takes health to 0 or below.
func AdjustHealth(a Actor, amount int, w *World) {
	info := a.Info()
	if info.Health <= 0 {
		return
	}

	info.Health = saturatingAdd(info.Health, amount)
	if info.Health <= 0 {
		if w != nil {
			w.stats.Deaths++
		}
		a.OnDeath(w)
	}
}

func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	default:
		return a + b
	}
}
