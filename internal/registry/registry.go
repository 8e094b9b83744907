// Package registry provides a global registry for actor kinds.
// Kinds register themselves in init() functions, allowing maps to name
// actors by type without the engine knowing any concrete kind.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// SpriteLookup resolves a sprite by ID. It may be nil.
type SpriteLookup func(id string) (*sprite.Sprite, bool)

// Factory creates an actor from a map spawn entry.
type Factory func(spawn tilemap.ActorSpawn, sprites SpriteLookup) (engine.Actor, error)

// KindInfo contains metadata about a registered actor kind.
type KindInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an actor kind to the registry.
// Typically called from the kind's init() function.
// Panics if a kind with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: actor kind %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered kinds, sorted by ID.
func List() []KindInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]KindInfo, 0, len(factories))
	for id := range factories {
		result = append(result, KindInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the actor kind named by spawn.Type.
// Returns an error if the kind is not registered or rejects the spawn.
func Create(spawn tilemap.ActorSpawn, sprites SpriteLookup) (engine.Actor, error) {
	mu.RLock()
	f, ok := factories[spawn.Type]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown actor kind %q", spawn.Type)
	}

	a, err := f(spawn, sprites)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", spawn.Type, err)
	}
	return a, nil
}

// Exists checks if a kind with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Loader returns an engine loader that creates actors through the registry.
func Loader(sprites SpriteLookup) engine.Loader {
	return func(spawn tilemap.ActorSpawn) (engine.Actor, error) {
		return Create(spawn, sprites)
	}
}
