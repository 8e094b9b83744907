package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// Game is the game-level hook invoked once per tick, after deferred
// commands are applied and before actors run.
type Game interface {
	Tick(w *World)
}

// GameFunc adapts a function to Game.
type GameFunc func(w *World)

// Tick calls f(w).
func (f GameFunc) Tick(w *World) { f(w) }

// Loader creates the actor described by a map spawn entry.
type Loader func(spawn tilemap.ActorSpawn) (Actor, error)

// WorldConfig holds the view and camera settings of a World.
type WorldConfig struct {
	ViewW   int // View width in pixels
	ViewH   int // View height in pixels
	MarginX float64
	MarginY float64
}

// DefaultWorldConfig returns a config with sensible defaults.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		ViewW:   320,
		ViewH:   192,
		MarginX: 0.3,
		MarginY: 0.3,
	}
}

// Stats counts what happened since the world was created.
type Stats struct {
	Ticks     int
	Spawned   int
	Removed   int
	Deaths    int
	WorldHits int
	ActorHits int
	Overlaps  int
}

// World owns the map, the actors and the deferred command queue, and
// advances them one tick per Step.
//
// World is single-threaded: every method must be called from the goroutine
// that drives Step.
type World struct {
	config WorldConfig
	loader Loader
	game   Game
	logger *log.Logger
	rng    *rand.Rand

	arena    Arena
	actors   []Ref
	commands []Command

	gameMap    *tilemap.Map
	controlled Ref
	camera     *Camera
	fade       Fade

	scrollX, scrollY int
	frame            int
	paused           bool
	ticking          bool
	epoch            int // bumped whenever the actor list is cleared

	stats Stats
}

// NewWorld creates an empty world. loader may be nil if no map spawns
// actors by kind.
func NewWorld(cfg WorldConfig, loader Loader) *World {
	return &World{
		config: cfg,
		loader: loader,
		logger: log.New(io.Discard),
		rng:    rand.New(rand.NewSource(1)),
	}
}

// SetSeed reseeds the random source handed to actors.
func (w *World) SetSeed(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
}

// Rand returns the world's random source. Actors draw from it in tick
// order, so a seeded world replays the same way.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// SetLogger sets the logger used for command and map diagnostics.
func (w *World) SetLogger(l *log.Logger) {
	if l != nil {
		w.logger = l
	}
}

// SetGame installs the game-level per-tick hook.
func (w *World) SetGame(g Game) {
	w.game = g
}

// Queue defers cmd to the start of the next Step.
func (w *World) Queue(cmd Command) {
	w.commands = append(w.commands, cmd)
}

// Pending returns the number of queued commands.
func (w *World) Pending() int {
	return len(w.commands)
}

// Step advances the world by one tick:
//  1. apply commands queued before this tick
//  2. run the game hook
//  3. unless paused, advance sprites and tick every live actor in list
//     order, dropping actors that were already destroyed
//  4. advance camera and fade
func (w *World) Step() {
	w.drain()

	w.ticking = true
	defer func() { w.ticking = false }()

	if w.game != nil {
		w.game.Tick(w)
	}

	if !w.paused {
		w.tickActors()
	}

	w.advanceCamera()
	w.fade.advance()
	w.frame++
	w.stats.Ticks++
}

func (w *World) tickActors() {
	for _, r := range w.actors {
		w.arena.WithMut(r, func(a Actor) {
			advanceSprites(a.Info())
		})
	}

	next := make([]Ref, 0, len(w.actors))
	for _, r := range w.actors {
		destroyed := false
		w.arena.WithMut(r, func(a Actor) {
			if a.Info().Destroyed {
				destroyed = true
				return
			}
			Tick(a, w)
		})

		switch {
		case destroyed:
			w.dropActor(r)
		case w.arena.Contains(r):
			next = append(next, r)
		}
	}
	w.actors = next
}

func (w *World) dropActor(r Ref) {
	if w.arena.Remove(r) {
		w.stats.Removed++
	}
	if w.controlled == r {
		w.controlled = Ref{}
	}
	if w.camera != nil && w.camera.Follow == r {
		w.camera.Follow = Ref{}
	}
}

func (w *World) drain() {
	pending := w.commands
	w.commands = nil
	for _, cmd := range pending {
		w.apply(cmd)
	}
}

func (w *World) apply(cmd Command) {
	switch c := cmd.(type) {
	case joinActor:
		if c.epoch != w.epoch {
			w.arena.Remove(c.ref)
			w.logger.Debug("join from previous map dropped", "actor", c.ref)
			return
		}
		if w.arena.Contains(c.ref) {
			w.actors = append(w.actors, c.ref)
			w.stats.Spawned++
		}
	case SpawnKind:
		w.spawnKind(c.Spawn)
	case RemoveActor:
		w.removeActor(c.Ref)
	case LoadMap:
		w.loadMap(c.Map)
	case UnloadMap:
		w.unloadMap()
	case SetControlled:
		w.setControlled(c.Ref)
	case FollowActor:
		w.follow(c.Ref)
	case StopFollowing:
		if w.camera != nil {
			w.camera.Follow = Ref{}
		}
	case StartFade:
		w.fade = Fade{From: c.From, To: c.To, Frames: c.Frames}
	case SetPaused:
		w.paused = c.Paused
		w.logger.Debug("pause changed", "paused", c.Paused)
	default:
		w.logger.Warn("unknown command dropped", "command", cmd)
	}
}

// AddActor stores a and returns its handle. Outside a tick the actor joins
// the list at once; during a tick it joins at the start of the next one.
func (w *World) AddActor(a Actor) Ref {
	r := w.arena.Insert(a)
	if w.ticking {
		w.Queue(joinActor{ref: r, epoch: w.epoch})
	} else {
		w.actors = append(w.actors, r)
		w.stats.Spawned++
	}
	return r
}

func (w *World) spawnKind(spawn tilemap.ActorSpawn) (Ref, bool) {
	if w.loader == nil {
		w.logger.Warn("no actor loader, spawn dropped", "type", spawn.Type)
		return Ref{}, false
	}
	a, err := w.loader(spawn)
	if err != nil {
		w.logger.Warn("spawn dropped", "type", spawn.Type, "error", err)
		return Ref{}, false
	}
	r := w.arena.Insert(a)
	w.actors = append(w.actors, r)
	w.stats.Spawned++
	return r, true
}

func (w *World) removeActor(r Ref) {
	if !w.arena.Contains(r) {
		w.logger.Debug("remove of stale actor dropped", "actor", r)
		return
	}
	for i, other := range w.actors {
		if other == r {
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			break
		}
	}
	w.dropActor(r)
}

// LoadMap replaces the map, instantiates its actors through the loader and
// calls Init on each. During a tick the load is deferred to the next one.
func (w *World) LoadMap(m *tilemap.Map) {
	if w.ticking {
		w.Queue(LoadMap{Map: m})
		return
	}
	w.loadMap(m)
}

func (w *World) loadMap(m *tilemap.Map) {
	w.clearActors()
	w.gameMap = m
	w.scrollX, w.scrollY = 0, 0
	w.camera = nil
	if m == nil {
		return
	}

	if bounds, ok := m.Bounds(); ok {
		w.camera = NewCamera(bounds, w.config.MarginX, w.config.MarginY)
	}

	var loaded []Ref
	for _, spawn := range m.Actors {
		if r, ok := w.spawnKind(spawn); ok {
			loaded = append(loaded, r)
		}
	}
	for _, r := range loaded {
		w.arena.WithMut(r, func(a Actor) {
			a.Init(w)
		})
	}

	w.logger.Debug("map loaded", "map", m.Name, "layers", len(m.Layers), "actors", len(loaded))
}

// UnloadMap drops the map and every actor.
func (w *World) UnloadMap() {
	if w.ticking {
		w.Queue(UnloadMap{})
		return
	}
	w.unloadMap()
}

func (w *World) unloadMap() {
	w.clearActors()
	w.gameMap = nil
	w.camera = nil
}

func (w *World) clearActors() {
	for _, r := range w.actors {
		w.dropActor(r)
	}
	w.actors = w.actors[:0]
	w.controlled = Ref{}
	w.epoch++
}

// SetControlledActor routes input to r. During a tick the change is
// deferred to the next one.
func (w *World) SetControlledActor(r Ref) {
	if w.ticking {
		w.Queue(SetControlled{Ref: r})
		return
	}
	w.setControlled(r)
}

func (w *World) setControlled(r Ref) {
	if r.Valid() && !w.arena.Contains(r) {
		w.logger.Debug("controlled actor is stale, ignored", "actor", r)
		return
	}
	w.controlled = r
}

// Controlled returns the actor receiving input.
func (w *World) Controlled() Ref {
	return w.controlled
}

// Follow points the camera at r. During a tick the change is deferred.
func (w *World) Follow(r Ref) {
	if w.ticking {
		w.Queue(FollowActor{Ref: r})
		return
	}
	w.follow(r)
}

func (w *World) follow(r Ref) {
	if w.camera == nil {
		w.logger.Debug("no camera, follow ignored", "actor", r)
		return
	}
	w.camera.Follow = r
}

func (w *World) advanceCamera() {
	if w.camera == nil || !w.camera.Follow.Valid() {
		return
	}
	w.arena.With(w.camera.Follow, func(a Actor) {
		x, y := a.Info().Center()
		w.camera.SnapTo(x, y, w.config.ViewW, w.config.ViewH, &w.scrollX, &w.scrollY)
	})
}

// ButtonDown delivers a button press to the controlled actor.
func (w *World) ButtonDown(name string) {
	w.withControlled(func(a Actor) { a.OnButtonDown(name, w) })
}

// ButtonUp delivers a button release to the controlled actor.
func (w *World) ButtonUp(name string) {
	w.withControlled(func(a Actor) { a.OnButtonUp(name, w) })
}

// AxisChanged delivers an axis change to the controlled actor.
func (w *World) AxisChanged(name string, value float64) {
	w.withControlled(func(a Actor) { a.OnAxisChanged(name, value, w) })
}

// ApplyInput delivers every event of frame in order.
func (w *World) ApplyInput(frame core.InputFrame) {
	for _, ev := range frame.Events {
		switch ev.Kind {
		case core.InputButtonDown:
			w.ButtonDown(ev.Name)
		case core.InputButtonUp:
			w.ButtonUp(ev.Name)
		case core.InputAxis:
			w.AxisChanged(ev.Name, ev.Value)
		}
	}
}

func (w *World) withControlled(fn func(Actor)) {
	if !w.controlled.Valid() {
		return
	}
	w.arena.WithMut(w.controlled, fn)
}

// With runs fn with shared access to the actor behind r. It returns false
// if the actor is gone or currently being mutated.
func (w *World) With(r Ref, fn func(Actor)) bool {
	return w.arena.With(r, fn)
}

// WithMut runs fn with exclusive access to the actor behind r. It returns
// false if the actor is gone or borrowed.
func (w *World) WithMut(r Ref, fn func(Actor)) bool {
	return w.arena.WithMut(r, fn)
}

// Snapshot returns a copy of the state of the actor behind r.
func (w *World) Snapshot(r Ref) (Info, bool) {
	var info Info
	ok := w.arena.With(r, func(a Actor) {
		info = *a.Info()
	})
	return info, ok
}

// Actors returns the live actor list in tick order.
func (w *World) Actors() []Ref {
	out := make([]Ref, len(w.actors))
	copy(out, w.actors)
	return out
}

// EachActor calls fn for every listed actor in order, skipping actors that
// cannot be borrowed.
func (w *World) EachActor(fn func(r Ref, info *Info)) {
	for _, r := range w.actors {
		w.arena.With(r, func(a Actor) {
			fn(r, a.Info())
		})
	}
}

// eachBlocker calls fn with the footprint of every listed blocking actor
// other than self that can be borrowed and is not destroyed.
func (w *World) eachBlocker(self Ref, fn func(r Ref, bounds core.Rect)) {
	for _, r := range w.actors {
		if r == self {
			continue
		}
		w.arena.With(r, func(a Actor) {
			info := a.Info()
			if info.Destroyed || !info.BlockingCollision {
				return
			}
			if b, ok := info.Bounds(); ok {
				fn(r, b)
			}
		})
	}
}

// Map returns the current map, or nil.
func (w *World) Map() *tilemap.Map {
	return w.gameMap
}

// CheckCollision tests rect against the current map. Without a map nothing collides.
func (w *World) CheckCollision(rect core.Rect, channel int) bool {
	if w.gameMap == nil {
		return false
	}
	return w.gameMap.CheckCollision(rect, channel)
}

// CheckSolid reports whether rect is blocked by the map or by a blocking
// actor other than self. Actors that cannot be borrowed are ignored.
func (w *World) CheckSolid(rect core.Rect, channel int, self Ref) bool {
	if w.CheckCollision(rect, channel) {
		return true
	}
	solid := false
	w.eachBlocker(self, func(_ Ref, b core.Rect) {
		if core.IsColliding(rect, b) {
			solid = true
		}
	})
	return solid
}

// Camera returns the current camera, or nil.
func (w *World) Camera() *Camera {
	return w.camera
}

// Scroll returns the top-left pixel of the view.
func (w *World) Scroll() (int, int) {
	return w.scrollX, w.scrollY
}

// SetView changes the view size used by the camera.
func (w *World) SetView(width, height int) {
	w.config.ViewW = width
	w.config.ViewH = height
}

// View returns the view size in pixels.
func (w *World) View() (int, int) {
	return w.config.ViewW, w.config.ViewH
}

// Fade returns the current fade state.
func (w *World) Fade() Fade {
	return w.fade
}

// Frame returns the number of completed ticks.
func (w *World) Frame() int {
	return w.frame
}

// Paused reports whether actor simulation is paused.
func (w *World) Paused() bool {
	return w.paused
}

// Stats returns the counters accumulated so far.
func (w *World) Stats() Stats {
	return w.stats
}

// Logger returns the world logger.
func (w *World) Logger() *log.Logger {
	return w.logger
}
