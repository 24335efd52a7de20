package tankbattle

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle/stages"
)

// Seeds are drawn from [0, MaxSeed).
const MaxSeed = 9999

// NoSeed asks for a randomly drawn seed.
const NoSeed int64 = -1

var (
	// ErrHumanWithoutRender is returned by New when a player is under human
	// control but no rendering surface was requested.
	ErrHumanWithoutRender = errors.New("tankbattle: human control requires rendering")
	// ErrHumanControl is returned by Step when no tank is under programmatic control.
	ErrHumanControl = errors.New("tankbattle: environment is under human control")
)

// Options configure an environment.
type Options struct {
	Config       config.TankBattleConfig
	Render       bool  // A display is attached; required for human control
	Player1Human bool  // Player 1 is driven by HumanInput
	Player2Human bool  // Player 2 is driven by HumanInput
	Seed         int64 // Values outside [0, MaxSeed) draw a random seed
	Debug        bool  // Log counters every 60 frames and a summary on reset
	Logger       *log.Logger
}

// DefaultOptions returns programmatic-control options with the default config
// and a random seed.
func DefaultOptions() Options {
	return Options{
		Config: config.DefaultTankBattleConfig(),
		Seed:   NoSeed,
	}
}

// Env is the reinforcement learning facade over an Engine.
type Env struct {
	opts       Options
	engine     *Engine
	stage      *stages.Stage
	seed       int64
	randomSeed bool
	frameSkip  int

	frame      *image.RGBA
	frameDirty bool
}

// New validates the options, builds the arena and resets it.
func New(opts Options) (*Env, error) {
	if (opts.Player1Human || opts.Player2Human) && !opts.Render {
		return nil, ErrHumanWithoutRender
	}
	if err := config.Validate(opts.Config); err != nil {
		return nil, fmt.Errorf("tankbattle: %w", err)
	}

	stage, err := resolveStage(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("tankbattle: %w", err)
	}

	seed, random := opts.Seed, false
	if seed < 0 || seed >= MaxSeed {
		seed = rand.Int63n(MaxSeed)
		random = true
	}

	logger := opts.Logger
	if opts.Debug {
		if logger == nil {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          "tankbattle",
			})
		} else {
			// Child logger, so the caller's level is left alone.
			logger = logger.With()
		}
		logger.SetLevel(log.DebugLevel)
	}

	env := &Env{
		opts:       opts,
		engine:     NewEngine(opts.Config, stage, seed, logger, opts.Debug),
		stage:      stage,
		seed:       seed,
		randomSeed: random,
		frameSkip:  max(1, opts.Config.Episode.FrameSkip),
	}
	env.Reset()
	return env, nil
}

// resolveStage picks the configured stage, or none for a negative index.
func resolveStage(cfg config.TankBattleConfig) (*stages.Stage, error) {
	index := cfg.Episode.Stage
	if index < 0 {
		return nil, nil
	}

	var (
		stage stages.Stage
		ok    bool
	)
	if cfg.Episode.StageDir != "" {
		list, err := stages.NewLoader(cfg.Episode.StageDir).LoadAll()
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			stage, ok = list[index%len(list)], true
		}
	} else {
		stage, ok = stages.Get(index)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no stages available", stages.ErrInvalidStage)
	}

	if err := stage.Validate(cfg.Engine.MapTiles); err != nil {
		return nil, err
	}
	return &stage, nil
}

// Reset starts a new episode.
func (e *Env) Reset() {
	e.engine.Reset()
	e.frameDirty = true
}

// Step applies programmatic actions and advances FrameSkip ticks.
//
// With both players programmatic, action drives player 1 and actionP2
// drives player 2. With one human player, action drives the other one and
// actionP2 is ignored. The returned rewards hold at most one queued value
// per player.
func (e *Env) Step(action, actionP2 Action) (Rewards, error) {
	p1, p2, err := e.route(action, actionP2)
	if err != nil {
		return Rewards{}, err
	}
	e.Advance(p1, p2)
	return e.engine.PopRewards(), nil
}

// route maps programmatic actions onto the tanks not under human control.
func (e *Env) route(action, actionP2 Action) (Action, Action, error) {
	twoPlayers := e.opts.Config.Episode.TwoPlayers
	switch {
	case e.opts.Player1Human && e.opts.Player2Human:
		return ActionNone, ActionNone, ErrHumanControl
	case !e.opts.Player1Human && !e.opts.Player2Human:
		if twoPlayers {
			return action, actionP2, nil
		}
		return action, ActionNone, nil
	case !e.opts.Player1Human:
		return action, ActionNone, nil
	case twoPlayers:
		return ActionNone, action, nil
	default:
		return ActionNone, ActionNone, ErrHumanControl
	}
}

// Advance queues one action per player and runs FrameSkip ticks. It is the
// entry point for decoded human input and does not check control modes.
func (e *Env) Advance(p1, p2 Action) {
	e.engine.Queue(SidePlayer1, p1)
	e.engine.Queue(SidePlayer2, p2)
	for range e.frameSkip {
		e.engine.Tick()
	}
	e.frameDirty = true
}

// StepAll steps player 1 and returns the observation, rewards and terminal flag.
func (e *Env) StepAll(action Action) (*image.RGBA, Rewards, bool, error) {
	r, err := e.Step(action, ActionNone)
	if err != nil {
		return nil, Rewards{}, false, err
	}
	return e.GetState(), r, e.IsTerminal(), nil
}

// GetState returns the current RGB frame. The image is reused across calls
// and must not be retained past the next step.
func (e *Env) GetState() *image.RGBA {
	if e.frame == nil {
		size := e.opts.Config.Engine.ScreenSize()
		e.frame = image.NewRGBA(image.Rect(0, 0, size, size))
		e.frameDirty = true
	}
	if e.frameDirty {
		Rasterize(e.frame, e.engine.world.entities, e.opts.Config.Engine.TileSize)
		e.frameDirty = false
	}
	return e.frame
}

// IsTerminal reports whether the episode has ended.
func (e *Env) IsTerminal() bool {
	return e.engine.IsTerminal()
}

// Reason describes why the episode ended.
func (e *Env) Reason() string {
	return e.engine.Reason()
}

// NumActions returns the size of the action space.
func (e *Env) NumActions() int {
	return NumActions
}

// ActionSpace lists every valid action.
func (e *Env) ActionSpace() []Action {
	out := make([]Action, NumActions)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// StateSpace returns the observation width and height in pixels.
func (e *Env) StateSpace() (int, int) {
	size := e.opts.Config.Engine.ScreenSize()
	return size, size
}

// NumObjectives returns the number of reward signals, one per player.
func (e *Env) NumObjectives() int {
	return 2
}

// Seed returns the seed of the random stream.
func (e *Env) Seed() int64 {
	return e.seed
}

// RandomSeed reports whether the seed was drawn instead of requested.
func (e *Env) RandomSeed() bool {
	return e.randomSeed
}

// Score returns the episode score.
func (e *Env) Score() Scores {
	return e.engine.Score()
}

// Frame returns the number of ticks since reset.
func (e *Env) Frame() int {
	return e.engine.Frame()
}

// Config returns the configuration the environment runs with.
func (e *Env) Config() config.TankBattleConfig {
	return e.opts.Config
}

// Options returns the options the environment was created with.
func (e *Env) Options() Options {
	return e.opts
}

// Engine exposes the underlying simulation.
func (e *Env) Engine() *Engine {
	return e.engine
}

// Entities returns a copy of every live entity, for renderers.
func (e *Env) Entities() []Entity {
	return e.engine.Entities()
}

// Clone creates an independent environment with the same options. A
// randomly seeded environment yields a clone with a fresh random seed.
func (e *Env) Clone() (*Env, error) {
	opts := e.opts
	opts.Seed = e.seed
	if e.randomSeed {
		opts.Seed = NoSeed
	}
	return New(opts)
}
