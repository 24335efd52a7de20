package tankbattle

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/core"
	"github.com/vovakirdan/tui-tankbattle/internal/registry"
)

// Package-level settings applied by the CLI before games are created.
var (
	settingsMu sync.RWMutex
	gameConfig = config.DefaultTankBattleConfig()
	gameLogger *log.Logger
)

// SetConfig sets the engine configuration used by new terminal games.
func SetConfig(cfg config.TankBattleConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// SetLogger sets the logger passed to new terminal games.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameLogger = l
}

func settings() (config.TankBattleConfig, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return gameConfig, gameLogger
}

// Game adapts the environment to the terminal platform. Every player is
// under human control.
type Game struct {
	twoPlayers bool
	env        *Env
	err        error
	paused     bool
}

// New1P creates a single player terminal game.
func New1P() *Game {
	return &Game{}
}

// New2P creates a two player terminal game.
func New2P() *Game {
	return &Game{twoPlayers: true}
}

func init() {
	registry.Register("tankbattle", func() registry.Game {
		return New1P()
	})
	registry.Register("tankbattle_2p", func() registry.Game {
		return New2P()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.twoPlayers {
		return "tankbattle_2p"
	}
	return "tankbattle"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.twoPlayers {
		return "Tank Battle (2 Players)"
	}
	return "Tank Battle"
}

// Players returns the number of local players.
func (g *Game) Players() int {
	if g.twoPlayers {
		return 2
	}
	return 1
}

// Reset starts a new episode. The runtime seed is folded into [0, MaxSeed).
func (g *Game) Reset(cfg core.RuntimeConfig) {
	engineCfg, logger := settings()
	engineCfg.Episode.TwoPlayers = g.twoPlayers

	seed := cfg.Seed % MaxSeed
	if seed < 0 {
		seed = -seed
	}

	g.paused = false
	g.env, g.err = New(Options{
		Config:       engineCfg,
		Render:       true,
		Player1Human: true,
		Player2Human: g.twoPlayers,
		Seed:         seed,
		Logger:       logger,
	})
}

// Step advances the arena by one step of decoded player input.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.env == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.env.IsTerminal() {
		g.paused = !g.paused
	}
	if g.paused || g.env.IsTerminal() {
		return core.StepResult{State: g.State()}
	}

	p1 := decode(in.Player1())
	p2 := ActionNone
	if g.twoPlayers {
		p2 = decode(in.Player2())
	}
	g.env.Advance(p1, p2)

	return core.StepResult{State: g.State()}
}

// decode picks the first tank action pressed this frame.
func decode(in core.InputFrame) Action {
	return ActionFromCore(in.First(
		core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionFire,
	))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.env == nil {
		return core.GameState{GameOver: true, Reason: fmt.Sprint(g.err)}
	}
	s := g.env.Score()
	return core.GameState{
		Score:    s.Total,
		ScoreP1:  s.P1,
		ScoreP2:  s.P2,
		Frames:   g.env.Frame(),
		GameOver: g.env.IsTerminal(),
		Paused:   g.paused,
		Reason:   g.env.Reason(),
	}
}

// Env returns the running environment, or nil if Reset failed.
func (g *Game) Env() *Env {
	return g.env
}

// Err returns the error from the last Reset.
func (g *Game) Err() error {
	return g.err
}
