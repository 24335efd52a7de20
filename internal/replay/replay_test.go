package replay

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle"
)

func newEnv(t *testing.T, seed int64) *tankbattle.Env {
	t.Helper()
	opts := tankbattle.DefaultOptions()
	opts.Config.Episode.TwoPlayers = true
	opts.Seed = seed
	env, err := tankbattle.New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return env
}

func record(t *testing.T, seed int64, steps int) *Recording {
	t.Helper()
	rec, err := NewRecorder(newEnv(t, seed))
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	for range steps {
		a := tankbattle.Action(rng.Intn(tankbattle.NumActions))
		b := tankbattle.Action(rng.Intn(tankbattle.NumActions))
		if _, err := rec.Step(a, b); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
	if rec.Len() != steps {
		t.Fatalf("Len() = %d, want %d", rec.Len(), steps)
	}
	return rec.Finish()
}

func TestRecordAndVerify(t *testing.T) {
	rec := record(t, 123, 800)

	if rec.ID == "" {
		t.Error("recording has no ID")
	}
	if rec.Final.Frame != 801 && !rec.Final.Terminal {
		t.Errorf("Final.Frame = %d, want 801", rec.Final.Frame)
	}

	got, err := rec.Verify()
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got != rec.Final {
		t.Errorf("Verify() = %+v, want %+v", got, rec.Final)
	}
}

func TestWriteRead(t *testing.T) {
	rec := record(t, 5, 300)

	var buf bytes.Buffer
	if err := rec.Write(&buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	loaded, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if loaded.ID != rec.ID || loaded.Seed != rec.Seed || len(loaded.Steps) != len(rec.Steps) {
		t.Fatalf("loaded recording differs: %s/%d/%d", loaded.ID, loaded.Seed, len(loaded.Steps))
	}
	if loaded.Config.Engine != rec.Config.Engine {
		t.Errorf("engine config = %+v, want %+v", loaded.Config.Engine, rec.Config.Engine)
	}
	if _, err := loaded.Verify(); err != nil {
		t.Errorf("Verify() after Read failed: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	rec := record(t, 9, 50)
	dir := filepath.Join(t.TempDir(), "replays")

	path, err := rec.Save(dir)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if filepath.Ext(path) != FileExt {
		t.Errorf("path = %s, want %s extension", path, FileExt)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Final != rec.Final {
		t.Errorf("Final = %+v, want %+v", loaded.Final, rec.Final)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := record(t, 11, 100)
	rec.Final.Total += 10

	if _, err := rec.Verify(); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() error = %v, want ErrMismatch", err)
	}
}

func TestRecorderRejectsRandomSeed(t *testing.T) {
	env := newEnv(t, tankbattle.NoSeed)
	if _, err := NewRecorder(env); !errors.Is(err, ErrRandomSeed) {
		t.Errorf("NewRecorder() error = %v, want ErrRandomSeed", err)
	}
}

func TestReadRejectsVersion(t *testing.T) {
	data, err := msgpack.Marshal(&Recording{Version: FormatVersion + 1, Config: config.DefaultTankBattleConfig()})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if _, err := Read(bytes.NewReader(data)); !errors.Is(err, ErrVersion) {
		t.Errorf("Read() error = %v, want ErrVersion", err)
	}
}

func TestPlayCallback(t *testing.T) {
	rec := record(t, 3, 20)

	calls := 0
	env, err := rec.Play(func(i int, env *tankbattle.Env) {
		if i != calls {
			t.Errorf("callback index = %d, want %d", i, calls)
		}
		calls++
	})
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if calls != 20 {
		t.Errorf("callback calls = %d, want 20", calls)
	}
	if env.Frame() != rec.Final.Frame {
		t.Errorf("Frame() = %d, want %d", env.Frame(), rec.Final.Frame)
	}
}
