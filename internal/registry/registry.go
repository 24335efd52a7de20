// Package registry maps game mode IDs to factories. Tank battle modes
// register from init, so the menu, the scoreboard and the CLI resolve modes
// without importing the game package directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tankbattle/internal/core"
)

// Game is one playable mode. Implementations hold pure simulation state;
// input mapping, pacing and terminal output belong to the platform.
type Game interface {
	// ID is the mode key used by the CLI and the scores table.
	ID() string

	// Title is shown in menus.
	Title() string

	// Reset starts a new episode sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick with the actions of every local player.
	Step(in core.MultiInputFrame) core.StepResult

	// Render draws the arena into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// PlayerCounter is implemented by modes with more than one local player.
type PlayerCounter interface {
	Players() int
}

// Players returns the number of local players of g; one unless g says otherwise.
func Players(g Game) int {
	if pc, ok := g.(PlayerCounter); ok && pc.Players() > 1 {
		return pc.Players()
	}
	return 1
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a mode. It panics when id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: g.Title(), Players: Players(g)}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Info returns the metadata of a registered mode.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether mode id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
