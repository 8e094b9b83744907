// Package sim drives one simulation run: it builds a world for a map from an
// asset pack, steps it, tracks the controlled player and turns the result
// into a run record for storage. The terminal viewer, the SSH server and the
// headless runner all go through a Session.
package sim

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesim/internal/actors"
	"github.com/vovakirdan/tilesim/internal/assets"
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// Session is a world running one map.
type Session struct {
	World *engine.World
	MapID string
	Mode  string
	Seed  int64

	pack    *assets.Pack
	config  core.RuntimeConfig
	logger  *log.Logger
	started time.Time

	hadPlayer bool
	coins     int
	health    int
}

// New loads mapID from pack into a fresh world. A zero seed is replaced by
// the current time.
func New(pack *assets.Pack, mapID, mode string, cfg core.RuntimeConfig, logger *log.Logger) (*Session, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	s := &Session{
		MapID:  mapID,
		Mode:   mode,
		Seed:   cfg.Seed,
		pack:   pack,
		config: cfg,
		logger: logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load() error {
	m, ok := s.pack.Map(s.MapID)
	if !ok {
		return fmt.Errorf("sim: unknown map %q", s.MapID)
	}

	w := engine.NewWorld(engine.WorldConfig{
		ViewW:   s.config.ViewW,
		ViewH:   s.config.ViewH,
		MarginX: s.config.MarginX,
		MarginY: s.config.MarginY,
	}, registry.Loader(s.pack.Sprite))
	w.SetLogger(s.logger)
	w.SetSeed(s.Seed)
	w.LoadMap(m)

	s.World = w
	s.started = time.Now()
	s.hadPlayer = false
	s.coins = 0
	s.health = 0
	s.observe()
	return nil
}

// Restart reloads the map into a new world and resets the run clock.
func (s *Session) Restart() error {
	return s.load()
}

// Step advances the world one tick.
func (s *Session) Step() {
	s.World.Step()
	s.observe()
}

// Run steps the world n times, applying the script's input before each tick.
// It stops early when the run is over.
func (s *Session) Run(n int, script Script) int {
	for i := 0; i < n; i++ {
		if s.Over() {
			return i
		}
		frame := script.Frame(s.World.Frame())
		s.World.ApplyInput(frame)
		s.Step()
	}
	return n
}

// observe caches what the viewer and the run record need from the player,
// so both survive the player being removed.
func (s *Session) observe() {
	s.World.With(s.World.Controlled(), func(a engine.Actor) {
		s.hadPlayer = true
		s.health = a.Info().Health
		if p, ok := a.(*actors.Player); ok {
			s.coins = p.Coins
		}
	})
}

// Coins returns the coins the player has collected.
func (s *Session) Coins() int {
	return s.coins
}

// Health returns the last known health of the controlled actor.
func (s *Session) Health() int {
	return s.health
}

// PlayerAlive reports whether the controlled actor is still in the world.
func (s *Session) PlayerAlive() bool {
	info, ok := s.World.Snapshot(s.World.Controlled())
	return ok && !info.Destroyed && info.Health > 0
}

// Over reports whether the player has died and the death fade finished.
// Maps without a controlled actor never end on their own.
func (s *Session) Over() bool {
	if !s.hadPlayer || s.PlayerAlive() {
		return false
	}
	return s.World.Pending() == 0 && !s.World.Fade().Active()
}

// Elapsed returns the wall time since the run started.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.started)
}

// Record summarizes the run for storage.
func (s *Session) Record() storage.Run {
	st := s.World.Stats()
	return storage.Run{
		MapID:     s.MapID,
		Mode:      s.Mode,
		Seed:      s.Seed,
		Ticks:     st.Ticks,
		Spawned:   st.Spawned,
		Removed:   st.Removed,
		Deaths:    st.Deaths,
		WorldHits: st.WorldHits,
		ActorHits: st.ActorHits,
		Overlaps:  st.Overlaps,
		Coins:     s.coins,
		Duration:  s.Elapsed(),
	}
}

// Save stores the run record. A nil store is a no-op.
func (s *Session) Save(store *storage.Store) (string, error) {
	if store == nil {
		return "", nil
	}
	return store.SaveRun(s.Record())
}
