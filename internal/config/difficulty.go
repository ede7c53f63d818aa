package config

// Progress is how far a run has come, as seen by difficulty scaling.
type Progress struct {
	Points  int
	Ticks   int
	Cleared int // levels cleared this run
}

// DifficultyManager turns run progress into an enemy speed factor.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:     cfg,
		initial: min(max(cfg.InitialLevel, 0), 1),
	}
}

// Enabled reports whether scaling is active.
func (d *DifficultyManager) Enabled() bool {
	return d.cfg.Enabled
}

// Level is the difficulty in [0, 1] for p. It starts at the initial level
// and climbs linearly until the progression's max_at is reached. A disabled
// manager reports 0.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = p.Points
	case "time":
		done = p.Ticks
	case "levels":
		done = p.Cleared
	default:
		return d.initial
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	frac := min(max(float64(done)/maxAt, 0), 1)
	return d.initial + frac*(1-d.initial)
}

// EnemySpeed is the factor applied to enemy walking speeds when the next
// level is built: 1 at difficulty 0, 1+speed_multiplier at difficulty 1.
func (d *DifficultyManager) EnemySpeed(p Progress) float64 {
	return 1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
}
