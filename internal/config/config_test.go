package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded TankBattleConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	hard := DefaultTankBattleConfig()
	if embedded.Engine != hard.Engine {
		t.Errorf("engine mismatch:\nembedded %+v\nhardcoded %+v", embedded.Engine, hard.Engine)
	}
	if embedded.Episode != hard.Episode {
		t.Errorf("episode mismatch:\nembedded %+v\nhardcoded %+v", embedded.Episode, hard.Episode)
	}
	if len(embedded.Difficulty.Thresholds) != len(hard.Difficulty.Thresholds) {
		t.Fatalf("threshold count mismatch: %d vs %d",
			len(embedded.Difficulty.Thresholds), len(hard.Difficulty.Thresholds))
	}
	for i := range hard.Difficulty.Thresholds {
		if embedded.Difficulty.Thresholds[i] != hard.Difficulty.Thresholds[i] {
			t.Errorf("threshold %d mismatch: %+v vs %+v", i,
				embedded.Difficulty.Thresholds[i], hard.Difficulty.Thresholds[i])
		}
	}
	if err := Validate(hard); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tank.yaml")
	data := []byte("episode:\n  num_of_enemies: 2\n  two_players: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTankBattle(path)
	if err != nil {
		t.Fatalf("LoadTankBattle: %v", err)
	}
	if cfg.Episode.NumOfEnemies != 2 {
		t.Errorf("expected 2 enemies, got %d", cfg.Episode.NumOfEnemies)
	}
	if cfg.Episode.TwoPlayers {
		t.Error("expected single player mode")
	}
	// Keys missing from the file keep their defaults
	if cfg.Engine.TileSize != DefaultTankBattleConfig().Engine.TileSize {
		t.Errorf("tile size should keep default, got %d", cfg.Engine.TileSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadTankBattle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  player_speed: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadTankBattle(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TankBattleConfig)
		valid  bool
	}{
		{"defaults", func(*TankBattleConfig) {}, true},
		{"tiny map", func(c *TankBattleConfig) { c.Engine.MapTiles = 5 }, false},
		{"odd tile", func(c *TankBattleConfig) { c.Engine.TileSize = 31 }, false},
		{"speed not divisor", func(c *TankBattleConfig) { c.Engine.EnemySpeed = 3 }, false},
		{"zero speed", func(c *TankBattleConfig) { c.Engine.PlayerSpeed = 0 }, false},
		{"bullet too big", func(c *TankBattleConfig) { c.Engine.BulletSize = 64 }, false},
		{"zero queue", func(c *TankBattleConfig) { c.Engine.RewardQueueSize = 0 }, false},
		{"negative enemies", func(c *TankBattleConfig) { c.Episode.NumOfEnemies = -1 }, false},
		{"unordered thresholds", func(c *TankBattleConfig) {
			c.Difficulty.Thresholds = []Threshold{{Score: 500}, {Score: 200}}
		}, false},
		{"bad threshold speed", func(c *TankBattleConfig) {
			c.Difficulty.Thresholds = []Threshold{{Score: 100, EnemySpeed: 5}}
		}, false},
		{"no thresholds", func(c *TankBattleConfig) { c.Difficulty.Thresholds = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTankBattleConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDifficultyManagerEnemy(t *testing.T) {
	cfg := DefaultTankBattleConfig()
	dm := NewDifficultyManager(cfg.Difficulty, cfg.Engine)

	tests := []struct {
		score   int
		loading int
		speed   int
	}{
		{0, 40, 2},
		{200, 40, 2},
		{210, 30, 2},
		{500, 30, 2},
		{510, 20, 2},
		{1000, 20, 2},
		{1010, 20, 4},
	}

	for _, tt := range tests {
		got := dm.Enemy(tt.score)
		if got.LoadingTime != tt.loading || got.Speed != tt.speed {
			t.Errorf("score %d: got %+v, want loading=%d speed=%d",
				tt.score, got, tt.loading, tt.speed)
		}
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() {
		t.Error("expected difficulty disabled")
	}
	if got := dm.Enemy(5000); got != dm.Base() {
		t.Errorf("disabled manager should return base stats, got %+v", got)
	}
}

func TestApplyTankBattlePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enemies int
		loading int
		enabled bool
	}{
		{DifficultyEasy, 3, 60, true},
		{DifficultyNormal, 5, 40, true},
		{DifficultyHard, 8, 30, true},
		{DifficultyFixed, 5, 40, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTankBattleConfig()
			ApplyTankBattlePreset(&cfg, tt.preset)
			if cfg.Episode.NumOfEnemies != tt.enemies {
				t.Errorf("enemies = %d, want %d", cfg.Episode.NumOfEnemies, tt.enemies)
			}
			if cfg.Engine.EnemyLoadingTime != tt.loading {
				t.Errorf("enemy loading = %d, want %d", cfg.Engine.EnemyLoadingTime, tt.loading)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset: got %q %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("hard preset: got %q %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}
