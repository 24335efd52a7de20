package config

import (
	_ "embed"
)

//go:embed defaults/tankbattle.yaml
var defaultTankBattleYAML []byte

// DefaultTankBattleConfig returns the hard-coded engine configuration.
// It mirrors defaults/tankbattle.yaml and is used when the embedded file fails to parse.
func DefaultTankBattleConfig() TankBattleConfig {
	return TankBattleConfig{
		Engine: EngineConfig{
			MapTiles:          13,
			TileSize:          32,
			BulletSize:        8,
			BulletSpeed:       8,
			PlayerSpeed:       4,
			EnemySpeed:        2,
			PlayerLoadingTime: 10,
			EnemyLoadingTime:  40,
			ExplosionSpeed:    2,
			KillReward:        10,
			RewardQueueSize:   100,
		},
		Episode: EpisodeConfig{
			MaxFrames:    100000,
			FrameSkip:    1,
			NumOfEnemies: 5,
			TwoPlayers:   true,
			Stage:        0,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Thresholds: []Threshold{
				{Score: 200, EnemyLoadingTime: 30},
				{Score: 500, EnemyLoadingTime: 20},
				{Score: 1000, EnemyLoadingTime: 20, EnemySpeed: 4},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTankBattleYAML
}
