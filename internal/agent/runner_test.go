package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
	"github.com/vovakirdan/tui-tankbattle/internal/observation"
)

func runConfig(episodes, maxSteps int) RunConfig {
	opts := tankbattle.DefaultOptions()
	opts.Config.Episode.TwoPlayers = true
	return RunConfig{
		Options:  opts,
		Episodes: episodes,
		MaxSteps: maxSteps,
		Seed:     100,
	}
}

func TestRandomAgentRange(t *testing.T) {
	a := NewRandom(1)
	seen := make(map[tankbattle.Action]bool)
	for range 500 {
		act := a.Act(observation.Observation{})
		if act < 0 || act >= tankbattle.NumActions {
			t.Fatalf("Act() = %d, out of range", act)
		}
		seen[act] = true
	}
	if len(seen) != tankbattle.NumActions {
		t.Errorf("saw %d distinct actions, want %d", len(seen), tankbattle.NumActions)
	}
}

func TestFixedAgent(t *testing.T) {
	if got := Fixed(tankbattle.ActionFire).Act(observation.Observation{}); got != tankbattle.ActionFire {
		t.Errorf("Act() = %v, want Fire", got)
	}
	if got := Idle.Act(observation.Observation{}); got != tankbattle.ActionNone {
		t.Errorf("Idle.Act() = %v, want None", got)
	}
}

func TestNewRunnerRequiresAgent(t *testing.T) {
	if _, err := NewRunner(runConfig(1, 10), nil, nil, nil); !errors.Is(err, ErrNoAgent) {
		t.Errorf("NewRunner() error = %v, want ErrNoAgent", err)
	}
}

func TestEpisodeSeeds(t *testing.T) {
	cfg := runConfig(3, 10)
	cfg.Seed = tankbattle.MaxSeed - 2
	r, err := NewRunner(cfg, Idle, nil, nil)
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}

	want := []int64{tankbattle.MaxSeed - 2, tankbattle.MaxSeed - 1, 0}
	for i, w := range want {
		if got := r.EpisodeSeed(i); got != w {
			t.Errorf("EpisodeSeed(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestRunMaxSteps(t *testing.T) {
	r, err := NewRunner(runConfig(2, 50), NewRandom(1), NewRandom(2), nil)
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, res := range results {
		if res.ID == "" {
			t.Errorf("result %d has no ID", i)
		}
		if res.Seed != r.EpisodeSeed(i) {
			t.Errorf("result %d seed = %d, want %d", i, res.Seed, r.EpisodeSeed(i))
		}
		if !res.Terminal && res.Steps != 50 {
			t.Errorf("result %d steps = %d, want 50", i, res.Steps)
		}
		if res.Returns.P1+res.Returns.P2 > res.Score.Total {
			t.Errorf("result %d returns %+v exceed score %d", i, res.Returns, res.Score.Total)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func() EpisodeResult {
		cfg := runConfig(1, 400)
		cfg.Observe = true
		cfg.ObsSize = 16
		r, err := NewRunner(cfg, NewRandom(5), NewRandom(6), nil)
		if err != nil {
			t.Fatalf("NewRunner() failed: %v", err)
		}
		res, err := r.RunEpisode(context.Background(), 0)
		if err != nil {
			t.Fatalf("RunEpisode() failed: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Frames != b.Frames || a.Steps != b.Steps || a.Reason != b.Reason {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
}

func TestRunRecordsReplay(t *testing.T) {
	cfg := runConfig(1, 200)
	cfg.Record = true
	r, err := NewRunner(cfg, NewRandom(3), NewRandom(4), nil)
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}

	res, err := r.RunEpisode(context.Background(), 0)
	if err != nil {
		t.Fatalf("RunEpisode() failed: %v", err)
	}
	if res.Replay == nil {
		t.Fatal("no replay recorded")
	}
	if res.Replay.ID != res.ID {
		t.Errorf("replay ID = %s, want %s", res.Replay.ID, res.ID)
	}
	if len(res.Replay.Steps) != res.Steps {
		t.Errorf("replay steps = %d, want %d", len(res.Replay.Steps), res.Steps)
	}
	if _, err := res.Replay.Verify(); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewRunner(runConfig(3, 0), Idle, nil, nil)
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}
	results, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSummarize(t *testing.T) {
	results := []EpisodeResult{
		{Score: tankbattle.Scores{Total: 10}, Frames: 100, Terminal: true},
		{Score: tankbattle.Scores{Total: 30}, Frames: 300},
	}
	s := Summarize(results)
	if s.Episodes != 2 || s.BestScore != 30 || s.MeanScore != 20 || s.MeanFrames != 200 || s.Terminated != 1 {
		t.Errorf("Summarize() = %+v", s)
	}
	if got := Summarize(nil); got.Episodes != 0 {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}
