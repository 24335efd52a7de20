package config

// EnemyStats are the parameters given to a newly spawned enemy tank.
type EnemyStats struct {
	LoadingTime int
	Speed       int
}

// DifficultyManager picks enemy parameters from the score thresholds.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base EnemyStats
}

// NewDifficultyManager creates a difficulty manager starting from the engine's
// base enemy loading time and speed.
func NewDifficultyManager(cfg DifficultyConfig, engine EngineConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg: cfg,
		base: EnemyStats{
			LoadingTime: engine.EnemyLoadingTime,
			Speed:       engine.EnemySpeed,
		},
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && len(d.cfg.Thresholds) > 0
}

// Base returns the stats used before any threshold is crossed.
func (d *DifficultyManager) Base() EnemyStats {
	return d.base
}

// Enemy returns the stats for an enemy spawned at the given total score.
// The highest threshold strictly below the score wins; thresholds are
// validated to be ascending.
func (d *DifficultyManager) Enemy(score int) EnemyStats {
	stats := d.base
	if !d.IsEnabled() {
		return stats
	}

	for _, th := range d.cfg.Thresholds {
		if score <= th.Score {
			break
		}
		stats.LoadingTime = th.EnemyLoadingTime
		if th.EnemySpeed > 0 {
			stats.Speed = th.EnemySpeed
		}
	}
	return stats
}
