package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/observation"
	"github.com/vovakirdan/tui-tankbattle/internal/replay"
)

// ErrNoAgent is returned when the runner has no player 1 agent.
var ErrNoAgent = errors.New("agent: player 1 agent is required")

// RunConfig describes a batch of headless episodes.
type RunConfig struct {
	Options  tankbattle.Options
	Episodes int
	MaxSteps int   // 0 runs each episode until it is terminal
	Seed     int64 // Episode i uses (Seed+i) mod MaxSeed; out of range draws a base seed
	Observe  bool  // Feed preprocessed frames to the agents
	ObsSize  int
	Record   bool // Attach a replay to every result
}

// EpisodeResult is the outcome of one episode.
type EpisodeResult struct {
	ID       string
	Seed     int64
	Steps    int
	Frames   int
	Score    tankbattle.Scores
	Returns  tankbattle.Rewards // Sum of drained rewards
	Terminal bool
	Reason   string
	Duration time.Duration
	Replay   *replay.Recording
}

// Runner plays episodes with one agent per player.
type Runner struct {
	cfg  RunConfig
	p1   Agent
	p2   Agent
	pre  *observation.Preprocessor
	log  *log.Logger
	base int64
}

// NewRunner creates a runner. p2 may be nil, in which case player 2 idles.
func NewRunner(cfg RunConfig, p1, p2 Agent, logger *log.Logger) (*Runner, error) {
	if p1 == nil {
		return nil, ErrNoAgent
	}
	if p2 == nil {
		p2 = Idle
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Episodes <= 0 {
		cfg.Episodes = 1
	}

	cfg.Options.Player1Human = false
	cfg.Options.Player2Human = false
	cfg.Options.Render = false

	base := cfg.Seed
	if base < 0 || base >= tankbattle.MaxSeed {
		base = rand.Int63n(tankbattle.MaxSeed)
	}

	r := &Runner{
		cfg:  cfg,
		p1:   p1,
		p2:   p2,
		log:  logger,
		base: base,
	}
	if cfg.Observe {
		r.pre = observation.New(cfg.ObsSize)
	}
	return r, nil
}

// EpisodeSeed returns the seed used for episode i.
func (r *Runner) EpisodeSeed(i int) int64 {
	return (r.base + int64(i)) % tankbattle.MaxSeed
}

// Run plays every configured episode. On cancellation it returns the
// finished episodes together with the context error.
func (r *Runner) Run(ctx context.Context) ([]EpisodeResult, error) {
	results := make([]EpisodeResult, 0, r.cfg.Episodes)
	for i := range r.cfg.Episodes {
		res, err := r.RunEpisode(ctx, i)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunEpisode plays episode i in a freshly created environment.
func (r *Runner) RunEpisode(ctx context.Context, i int) (EpisodeResult, error) {
	opts := r.cfg.Options
	opts.Seed = r.EpisodeSeed(i)

	env, err := tankbattle.New(opts)
	if err != nil {
		return EpisodeResult{}, fmt.Errorf("agent: episode %d: %w", i, err)
	}

	var rec *replay.Recorder
	step := env.Step
	if r.cfg.Record {
		rec, err = replay.NewRecorder(env)
		if err != nil {
			return EpisodeResult{}, fmt.Errorf("agent: episode %d: %w", i, err)
		}
		step = rec.Step
	}

	res := EpisodeResult{ID: uuid.NewString(), Seed: opts.Seed}
	start := time.Now()

	var obs observation.Observation
	for !env.IsTerminal() && (r.cfg.MaxSteps <= 0 || res.Steps < r.cfg.MaxSteps) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if r.pre != nil {
			obs = r.pre.Process(env.GetState())
		}

		rewards, err := step(r.p1.Act(obs), r.p2.Act(obs))
		if err != nil {
			return res, fmt.Errorf("agent: episode %d: %w", i, err)
		}
		res.Returns.P1 += rewards.P1
		res.Returns.P2 += rewards.P2
		res.Steps++
	}

	res.Frames = env.Frame()
	res.Score = env.Score()
	res.Terminal = env.IsTerminal()
	res.Reason = env.Reason()
	res.Duration = time.Since(start)
	if rec != nil {
		res.Replay = rec.Finish()
		res.Replay.ID = res.ID
	}

	r.log.Info("episode finished",
		"episode", i,
		"seed", res.Seed,
		"steps", res.Steps,
		"frames", res.Frames,
		"score", res.Score.Total,
		"reason", res.Reason,
	)
	return res, nil
}

// Summary aggregates a batch of episodes.
type Summary struct {
	Episodes   int
	BestScore  int
	MeanScore  float64
	MeanFrames float64
	Terminated int
}

// Summarize aggregates results.
func Summarize(results []EpisodeResult) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}

	var score, frames int
	for _, res := range results {
		score += res.Score.Total
		frames += res.Frames
		s.BestScore = max(s.BestScore, res.Score.Total)
		if res.Terminal {
			s.Terminated++
		}
	}
	s.MeanScore = float64(score) / float64(len(results))
	s.MeanFrames = float64(frames) / float64(len(results))
	return s
}
