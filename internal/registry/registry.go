// Package registry keeps the game factories. Games register themselves
// in init(), so the platform can list and build them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-lines/internal/core"
)

// Game is the contract between a game and the platform. A game holds
// pure logic; the platform owns input mapping, timing and rendering.
type Game interface {
	// ID returns the identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new game with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and status.
	State() core.GameState
}

// Resumable is implemented by games whose progress survives a restart.
type Resumable interface {
	Game
	// SaveState serializes the game in progress.
	SaveState() ([]byte, error)
	// RestoreState replaces the current game with a saved one.
	RestoreState(data []byte) error
}

// Resizable is implemented by games that can follow a terminal resize
// without restarting.
type Resizable interface {
	Resize(w, h int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a game factory. The title is taken from a throwaway
// instance. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a fresh game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
