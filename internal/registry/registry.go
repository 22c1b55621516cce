// Package registry maps game IDs to factories. Games register themselves in
// init(), so the CLI and the SSH server can create them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-kraken/internal/core"
)

// Game is the contract between a game's pure logic and the platform.
// Games never touch the terminal; the platform maps keys to actions, drives
// the fixed tick and paints the screen.
type Game interface {
	// ID is the stable name used on the command line and in the score table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run. Called once before the first Step and again
	// on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
