// Package config provides YAML-based configuration loading and
// difficulty management for the tank battle engine.
package config

// TankBattleConfig contains all configuration for the tank battle engine.
type TankBattleConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Episode    EpisodeConfig    `yaml:"episode"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// EngineConfig holds the fixed physical constants of the simulation.
// Speeds are in pixels per tick, times in ticks.
type EngineConfig struct {
	MapTiles          int `yaml:"map_tiles"`   // Tiles per side, border included
	TileSize          int `yaml:"tile_size"`   // Pixels per tile
	BulletSize        int `yaml:"bullet_size"` // Bullet footprint in pixels
	BulletSpeed       int `yaml:"bullet_speed"`
	PlayerSpeed       int `yaml:"player_speed"`
	EnemySpeed        int `yaml:"enemy_speed"`
	PlayerLoadingTime int `yaml:"player_loading_time"`
	EnemyLoadingTime  int `yaml:"enemy_loading_time"`
	ExplosionSpeed    int `yaml:"explosion_speed"` // Ticks per explosion animation frame
	KillReward        int `yaml:"kill_reward"`
	RewardQueueSize   int `yaml:"reward_queue_size"`
}

// ScreenSize returns the observation edge length in pixels.
func (e EngineConfig) ScreenSize() int {
	return e.MapTiles * e.TileSize
}

// EpisodeConfig holds per-episode settings.
type EpisodeConfig struct {
	MaxFrames    int  `yaml:"max_frames"` // 0 disables the frame limit
	FrameSkip    int  `yaml:"frame_skip"`
	NumOfEnemies int  `yaml:"num_of_enemies"`
	TwoPlayers   bool `yaml:"two_players"`
	Stage        int  `yaml:"stage"`

	// StageDir points at a directory of YAML stages replacing the builtin ones.
	StageDir string `yaml:"stage_dir,omitempty"`
}

// DifficultyConfig defines how enemies get tougher as the score grows.
type DifficultyConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Thresholds []Threshold `yaml:"thresholds"`
}

// Threshold applies once the total score is strictly above Score.
type Threshold struct {
	Score            int `yaml:"score"`
	EnemyLoadingTime int `yaml:"enemy_loading_time"`
	EnemySpeed       int `yaml:"enemy_speed,omitempty"` // 0 keeps the base enemy speed
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}
