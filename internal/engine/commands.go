package engine

import "github.com/vovakirdan/tilesim/internal/tilemap"

// Command is a deferred world mutation. Commands queued with World.Queue are
// applied in order at the start of the next Step, before any actor runs.
type Command interface {
	command()
}

// SpawnKind creates an actor of a registered kind at the next tick.
type SpawnKind struct {
	Spawn tilemap.ActorSpawn
}

func (SpawnKind) command() {}

// RemoveActor removes an actor immediately, without waiting for Destroy.
type RemoveActor struct {
	Ref Ref
}

func (RemoveActor) command() {}

// LoadMap replaces the current map and all of its actors.
type LoadMap struct {
	Map *tilemap.Map
}

func (LoadMap) command() {}

// UnloadMap drops the current map and all actors.
type UnloadMap struct{}

func (UnloadMap) command() {}

// SetControlled routes input to the given actor.
type SetControlled struct {
	Ref Ref
}

func (SetControlled) command() {}

// FollowActor points the camera at an actor.
type FollowActor struct {
	Ref Ref
}

func (FollowActor) command() {}

// StopFollowing freezes the camera where it is.
type StopFollowing struct{}

func (StopFollowing) command() {}

// StartFade begins a linear alpha transition lasting Frames ticks.
type StartFade struct {
	From   int
	To     int
	Frames int
}

func (StartFade) command() {}

// SetPaused freezes or resumes actor simulation. The game hook, camera and
// fade keep running while paused.
type SetPaused struct {
	Paused bool
}

func (SetPaused) command() {}

// joinActor adds an actor stored during a tick to the actor list. Joins
// queued before a map change are dropped.
type joinActor struct {
	ref   Ref
	epoch int
}

func (joinActor) command() {}
