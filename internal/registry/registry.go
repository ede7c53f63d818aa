// Package registry maps game ids to factories. Games register from init so
// hosts can create them by id.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is what a host drives. Implementations hold pure tick logic; the
// host owns input mapping, timing and drawing the screen.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// score store.
	ID() string

	Title() string

	// Reset starts a new run for the given screen and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick. The result carries a milestone on the
	// tick a level is cleared.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that follow a screen resize without
// restarting the run.
type Resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// LevelStarter is implemented by games whose runs can begin on a chosen
// level.
type LevelStarter interface {
	StartAt(levelID string)
}

// LevelReloader is implemented by games that can re-read level files while
// running.
type LevelReloader interface {
	ReloadLevels() error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns the registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// CreateAt instantiates a game whose runs start on levelID. An empty id
// keeps the game's default start. Games without level selection are an
// error when a level is requested.
func CreateAt(id, levelID string) (Game, error) {
	g, err := Create(id)
	if err != nil || levelID == "" {
		return g, err
	}
	s, ok := g.(LevelStarter)
	if !ok {
		return nil, fmt.Errorf("registry: game %q cannot start on a level", id)
	}
	s.StartAt(levelID)
	return g, nil
}
