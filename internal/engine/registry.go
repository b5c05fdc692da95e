package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// ErrUnknownEngine is returned when an engine ID is not registered.
var ErrUnknownEngine = errors.New("engine: unknown engine")

// Builder turns the driver configuration into an engine factory.
// It validates what it can up front; the returned Factory may still fail
// when the engine itself cannot initialize.
type Builder func(cfg config.Config) (Factory, error)

// Info contains metadata about a registered engine.
type Info struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	builder Builder
}

var (
	builders = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds an engine builder to the registry.
// Typically called from an engine package's init() function.
// Panics if an engine with the same ID is already registered.
func Register(id, title string, b Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := builders[id]; exists {
		panic(fmt.Sprintf("engine: %q already registered", id))
	}
	builders[id] = entry{title: title, builder: b}
}

// List returns information about all registered engines, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(builders))
	for id, e := range builders {
		result = append(result, Info{
			ID:    id,
			Title: e.title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if an engine with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := builders[id]
	return ok
}

// Bind resolves an engine ID against the configuration and returns a factory
// for fresh instances of it.
func Bind(id string, cfg config.Config) (Factory, error) {
	mu.RLock()
	e, ok := builders[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, id)
	}

	f, err := e.builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", id, err)
	}
	return f, nil
}
