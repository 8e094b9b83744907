package engine

import "fmt"

// Ref is a stable handle to an actor stored in an Arena. The zero Ref is
// never valid. A Ref goes stale once its actor is removed: the slot may be
// reused, but with a new generation.
type Ref struct {
	index      int
	generation uint32
}

// Valid reports whether r was ever issued by an arena.
func (r Ref) Valid() bool {
	return r.generation != 0
}

func (r Ref) String() string {
	if !r.Valid() {
		return "actor(none)"
	}
	return fmt.Sprintf("actor(%d#%d)", r.index, r.generation)
}

// Borrow states of a slot.
const (
	borrowFree      = 0
	borrowExclusive = -1
)

type slot struct {
	actor      Actor
	generation uint32
	borrow     int // 0 free, >0 shared count, -1 exclusive
}

// Arena owns actors and hands out generation-checked handles.
// Access goes through With / WithMut, which track borrows at runtime:
// an exclusive borrow fails if the actor is borrowed at all, a shared borrow
// fails while an exclusive one is held. A failed borrow means "skip".
//
// Arena is not safe for concurrent use.
type Arena struct {
	slots []slot
	free  []int
	live  int
}

// Insert stores a and returns its handle.
func (a *Arena) Insert(actor Actor) Ref {
	var idx int
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = len(a.slots) - 1
	}

	s := &a.slots[idx]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.actor = actor
	s.borrow = borrowFree
	a.live++

	ref := Ref{index: idx, generation: s.generation}
	actor.Info().ref = ref
	return ref
}

func (a *Arena) slot(r Ref) *slot {
	if !r.Valid() || r.index < 0 || r.index >= len(a.slots) {
		return nil
	}
	s := &a.slots[r.index]
	if s.generation != r.generation || s.actor == nil {
		return nil
	}
	return s
}

// Contains reports whether r still refers to a stored actor.
func (a *Arena) Contains(r Ref) bool {
	return a.slot(r) != nil
}

// Remove drops the actor behind r. It fails if r is stale or the actor is
// currently borrowed.
func (a *Arena) Remove(r Ref) bool {
	s := a.slot(r)
	if s == nil || s.borrow != borrowFree {
		return false
	}
	s.actor = nil
	a.free = append(a.free, r.index)
	a.live--
	return true
}

// Len returns the number of stored actors.
func (a *Arena) Len() int {
	return a.live
}

// With runs fn with shared access to the actor behind r. It returns false
// without calling fn if r is stale or the actor is exclusively borrowed.
func (a *Arena) With(r Ref, fn func(Actor)) bool {
	s := a.slot(r)
	if s == nil || s.borrow == borrowExclusive {
		return false
	}
	s.borrow++
	defer func() { a.slots[r.index].borrow-- }()
	fn(s.actor)
	return true
}

// WithMut runs fn with exclusive access to the actor behind r. It returns
// false without calling fn if r is stale or the actor is borrowed at all.
func (a *Arena) WithMut(r Ref, fn func(Actor)) bool {
	s := a.slot(r)
	if s == nil || s.borrow != borrowFree {
		return false
	}
	s.borrow = borrowExclusive
	defer func() { a.slots[r.index].borrow = borrowFree }()
	fn(s.actor)
	return true
}

// Borrowed reports whether the actor behind r is currently borrowed.
func (a *Arena) Borrowed(r Ref) bool {
	s := a.slot(r)
	return s != nil && s.borrow != borrowFree
}
