package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadTankBattle loads the engine configuration.
// Search order: customPath -> ~/.tankbattle/configs/tankbattle.yaml -> ./configs/tankbattle.yaml -> embedded default
func LoadTankBattle(customPath string) (TankBattleConfig, error) {
	// Missing keys keep their default values
	cfg := DefaultTankBattleConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, Validate(cfg)
	}

	if userCfgPath := userConfigPath("tankbattle.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultTankBattleConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil && Validate(candidate) == nil {
				return candidate, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "tankbattle.yaml")); err == nil {
		candidate := DefaultTankBattleConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && Validate(candidate) == nil {
			return candidate, nil
		}
	}

	embedded := DefaultTankBattleConfig()
	if err := yaml.Unmarshal(defaultTankBattleYAML, &embedded); err != nil {
		return DefaultTankBattleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tankbattle", "configs", filename)
}

// Validate checks the invariants the engine relies on.
func Validate(cfg TankBattleConfig) error {
	e := cfg.Engine
	switch {
	case e.MapTiles < 7:
		return fmt.Errorf("%w: map_tiles must be at least 7, got %d", ErrInvalidConfig, e.MapTiles)
	case e.TileSize <= 0 || e.TileSize%2 != 0:
		return fmt.Errorf("%w: tile_size must be a positive even number, got %d", ErrInvalidConfig, e.TileSize)
	case e.BulletSize <= 0 || e.BulletSize > e.TileSize:
		return fmt.Errorf("%w: bullet_size must be in (0, tile_size], got %d", ErrInvalidConfig, e.BulletSize)
	case e.BulletSpeed <= 0:
		return fmt.Errorf("%w: bullet_speed must be positive, got %d", ErrInvalidConfig, e.BulletSpeed)
	case e.PlayerLoadingTime < 0 || e.EnemyLoadingTime < 0:
		return fmt.Errorf("%w: loading times must not be negative", ErrInvalidConfig)
	case e.ExplosionSpeed <= 0:
		return fmt.Errorf("%w: explosion_speed must be positive, got %d", ErrInvalidConfig, e.ExplosionSpeed)
	case e.RewardQueueSize <= 0:
		return fmt.Errorf("%w: reward_queue_size must be positive, got %d", ErrInvalidConfig, e.RewardQueueSize)
	}

	if err := validateSpeed("player_speed", e.PlayerSpeed, e.TileSize); err != nil {
		return err
	}
	if err := validateSpeed("enemy_speed", e.EnemySpeed, e.TileSize); err != nil {
		return err
	}

	if cfg.Episode.NumOfEnemies < 0 {
		return fmt.Errorf("%w: num_of_enemies must not be negative", ErrInvalidConfig)
	}
	if cfg.Episode.MaxFrames < 0 {
		return fmt.Errorf("%w: max_frames must not be negative", ErrInvalidConfig)
	}

	prev := -1
	for i, th := range cfg.Difficulty.Thresholds {
		if th.Score <= prev {
			return fmt.Errorf("%w: difficulty threshold %d is not ascending", ErrInvalidConfig, i)
		}
		prev = th.Score
		if th.EnemyLoadingTime < 0 {
			return fmt.Errorf("%w: difficulty threshold %d has negative loading time", ErrInvalidConfig, i)
		}
		if th.EnemySpeed != 0 {
			if err := validateSpeed("difficulty enemy_speed", th.EnemySpeed, e.TileSize); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tanks move whole pixels per tick and must land exactly on the next tile.
func validateSpeed(name string, speed, tileSize int) error {
	if speed <= 0 || tileSize%speed != 0 {
		return fmt.Errorf("%w: %s must be a positive divisor of tile_size %d, got %d",
			ErrInvalidConfig, name, tileSize, speed)
	}
	return nil
}

// ApplyTankBattlePreset modifies the config based on a difficulty preset.
func ApplyTankBattlePreset(cfg *TankBattleConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	switch preset {
	case DifficultyEasy:
		cfg.Episode.NumOfEnemies = 3
		cfg.Engine.EnemyLoadingTime += 20
	case DifficultyHard:
		cfg.Episode.NumOfEnemies = 8
		cfg.Engine.EnemyLoadingTime = max(0, cfg.Engine.EnemyLoadingTime-10)
	}
}
