// Package replay records programmatic episodes and re-simulates them.
//
// A recording holds the seed, the configuration and one action pair per
// Step. Replaying it against a freshly constructed environment reproduces
// the episode exactly, so a recording is only valid when it starts right
// after tankbattle.New.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
)

// FormatVersion is bumped whenever the recording layout changes.
const FormatVersion = 1

// FileExt is the extension used for replay files.
const FileExt = ".tbr"

var (
	// ErrVersion is returned when a file was written by another format version.
	ErrVersion = errors.New("replay: unsupported format version")
	// ErrMismatch is returned by Verify when the re-simulated episode diverges.
	ErrMismatch = errors.New("replay: result mismatch")
	// ErrRandomSeed is returned when recording an environment whose seed
	// cannot be reproduced.
	ErrRandomSeed = errors.New("replay: environment has no reproducible seed")
)

// Step is one pair of programmatic actions.
type Step struct {
	_msgpack struct{} `msgpack:",as_array"`

	P1 int8
	P2 int8
}

// Result is the outcome of an episode.
type Result struct {
	Frame    int    `msgpack:"frame"`
	Total    int    `msgpack:"total"`
	P1       int    `msgpack:"p1"`
	P2       int    `msgpack:"p2"`
	Terminal bool   `msgpack:"terminal"`
	Reason   string `msgpack:"reason,omitempty"`
}

// Recording is a complete, replayable episode.
type Recording struct {
	Version   int                     `msgpack:"version"`
	ID        string                  `msgpack:"id"`
	CreatedAt time.Time               `msgpack:"created_at"`
	Seed      int64                   `msgpack:"seed"`
	Config    config.TankBattleConfig `msgpack:"config"`
	Steps     []Step                  `msgpack:"steps"`
	Final     Result                  `msgpack:"final"`
}

// ResultOf reads the current outcome of env.
func ResultOf(env *tankbattle.Env) Result {
	score := env.Score()
	return Result{
		Frame:    env.Frame(),
		Total:    score.Total,
		P1:       score.P1,
		P2:       score.P2,
		Terminal: env.IsTerminal(),
		Reason:   env.Reason(),
	}
}

// Recorder captures the actions fed into one environment.
type Recorder struct {
	env *tankbattle.Env
	rec Recording
}

// NewRecorder starts a recording for env, which must have been created
// with an explicit seed and not stepped yet.
func NewRecorder(env *tankbattle.Env) (*Recorder, error) {
	if env.RandomSeed() {
		return nil, ErrRandomSeed
	}
	return &Recorder{
		env: env,
		rec: Recording{
			Version:   FormatVersion,
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Seed:      env.Seed(),
			Config:    env.Config(),
		},
	}, nil
}

// Step forwards the actions to the environment and records them.
func (r *Recorder) Step(action, actionP2 tankbattle.Action) (tankbattle.Rewards, error) {
	rewards, err := r.env.Step(action, actionP2)
	if err != nil {
		return rewards, err
	}
	r.rec.Steps = append(r.rec.Steps, Step{P1: int8(action), P2: int8(actionP2)})
	return rewards, nil
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.rec.Steps)
}

// Finish stamps the final result and returns the recording.
func (r *Recorder) Finish() *Recording {
	r.rec.Final = ResultOf(r.env)
	rec := r.rec
	return &rec
}

// Write encodes the recording to w.
func (rec *Recording) Write(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Read decodes a recording from r.
func Read(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

// Save writes the recording into dir as <id>.tbr and returns the path.
func (rec *Recording) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, rec.ID+FileExt)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	defer f.Close()

	if err := rec.Write(f); err != nil {
		return "", err
	}
	return path, f.Close()
}

// Load reads a recording from a file.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Play re-simulates the recording from a fresh environment. The callback,
// when set, runs after every step.
func (rec *Recording) Play(onStep func(i int, env *tankbattle.Env)) (*tankbattle.Env, error) {
	opts := tankbattle.DefaultOptions()
	opts.Config = rec.Config
	opts.Seed = rec.Seed

	env, err := tankbattle.New(opts)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	for i, s := range rec.Steps {
		if _, err := env.Step(tankbattle.Action(s.P1), tankbattle.Action(s.P2)); err != nil {
			return nil, fmt.Errorf("replay: step %d: %w", i, err)
		}
		if onStep != nil {
			onStep(i, env)
		}
	}
	return env, nil
}

// Compare checks the outcome of env against the recorded one.
func (rec *Recording) Compare(env *tankbattle.Env) (Result, error) {
	got := ResultOf(env)
	if got != rec.Final {
		return got, fmt.Errorf("%w: recorded %+v, replayed %+v", ErrMismatch, rec.Final, got)
	}
	return got, nil
}

// Verify re-simulates the recording and compares the outcome with the
// recorded one.
func (rec *Recording) Verify() (Result, error) {
	env, err := rec.Play(nil)
	if err != nil {
		return Result{}, err
	}
	return rec.Compare(env)
}
