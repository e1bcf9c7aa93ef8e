// Package registry provides a global registry for scenarios: named initial
// layouts of worms, walls and fruit. Scenarios register themselves in init()
// functions, allowing the CLI to discover them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-worms/internal/core"
)

// Spawner is the surface a scenario populates. Coordinates are grid cells.
type Spawner interface {
	// Width and Height return the grid size in cells.
	Width() int
	Height() int

	// Rand returns the world RNG so layouts replay with the seed.
	Rand() *rand.Rand

	// SpawnWorm places a worm head at (x, y). A length of 0 uses the
	// configured spawn length and ColorDefault picks a palette color.
	// It reports false when the cell is taken or a pool is exhausted.
	SpawnWorm(x, y, length int, color core.Color) bool

	// SpawnFruit places a fruit at (x, y) if the cell is empty.
	SpawnFruit(x, y int) bool

	// PlaceWall fills a w by h rectangle with static blocks.
	PlaceWall(x, y, w, h int)
}

// Scenario builds an initial layout.
type Scenario interface {
	// ID returns a unique identifier (e.g., "classic"). Used on the CLI and
	// in the config file.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Populate places entities into an empty world.
	Populate(s Spawner)
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ScenarioInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scenario by its ID.
// Returns an error if the scenario ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
