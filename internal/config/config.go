// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// PlatformerConfig contains every tunable of the platformer simulation.
// Distances are world units (one tile is 16 units), velocities are units per
// tick and all delays are ticks at 60 ticks per second.
type PlatformerConfig struct {
	Physics    PlatformerPhysics   `yaml:"physics"`
	Player     PlatformerPlayer    `yaml:"player"`
	Enemies    PlatformerEnemies   `yaml:"enemies"`
	Animation  PlatformerAnimation `yaml:"animation"`
	Timers     PlatformerTimers    `yaml:"timers"`
	Scoring    PlatformerScoring   `yaml:"scoring"`
	Camera     PlatformerCamera    `yaml:"camera"`
	World      PlatformerWorld     `yaml:"world"`
	Difficulty DifficultyConfig    `yaml:"difficulty"`
}

// PlatformerPhysics defines the vertical integration constants.
type PlatformerPhysics struct {
	Gravity       float64 `yaml:"gravity"`         // added to vertical velocity every tick
	JumpVelocity  float64 `yaml:"jump_velocity"`   // upward speed given on jump
	BumpVelocity  float64 `yaml:"bump_velocity"`   // vertical speed after striking scenery from below
	DeathKick     float64 `yaml:"death_kick"`      // upward kick of the dying player
	ShellKillKick float64 `yaml:"shell_kill_kick"` // upward kick of a shell stomped while sliding
	FallLimit     float64 `yaml:"fall_limit"`      // y beyond which the player dies
}

// PlatformerPlayer defines the player hitbox and movement.
type PlatformerPlayer struct {
	Width       float64 `yaml:"width"`
	SmallHeight float64 `yaml:"small_height"`
	BigHeight   float64 `yaml:"big_height"`
	Speed       float64 `yaml:"speed"`
	FinishCreep float64 `yaml:"finish_creep"`
}

// PlatformerEnemies defines enemy and power-up movement.
type PlatformerEnemies struct {
	GoombaSpeed   float64 `yaml:"goomba_speed"`
	KoopaSpeed    float64 `yaml:"koopa_speed"`
	KoopaHeight   float64 `yaml:"koopa_height"`
	ShellSpeed    float64 `yaml:"shell_speed"`
	ShellWidth    float64 `yaml:"shell_width"`
	ShellHeight   float64 `yaml:"shell_height"`
	ShellNudge    float64 `yaml:"shell_nudge"` // horizontal push of a kicked shell
	MushroomSpeed float64 `yaml:"mushroom_speed"`
}

// PlatformerAnimation defines how many ticks each walk cycle frame lasts.
type PlatformerAnimation struct {
	PlayerWalkEvery int `yaml:"player_walk_every"`
	ResizeEvery     int `yaml:"resize_every"`
	EnemyWalkEvery  int `yaml:"enemy_walk_every"`
	CoinSpinEvery   int `yaml:"coin_spin_every"`
}

// PlatformerTimers defines the deferred effect delays.
type PlatformerTimers struct {
	CollectibleRemove int `yaml:"collectible_remove"`
	GoombaRemove      int `yaml:"goomba_remove"`
	ShellRemove       int `yaml:"shell_remove"`
	ShellRearm        int `yaml:"shell_rearm"`
	ShellKick         int `yaml:"shell_kick"`
	ResizeEnd         int `yaml:"resize_end"`
	InvincibleEnd     int `yaml:"invincible_end"`
	DeathDrop         int `yaml:"death_drop"`
	Respawn           int `yaml:"respawn"`
	GameOverReset     int `yaml:"game_over_reset"`
	LevelAdvance      int `yaml:"level_advance"`
}

// PlatformerScoring defines the ledger rules.
type PlatformerScoring struct {
	StartingLives   int `yaml:"starting_lives"`
	CoinPoints      int `yaml:"coin_points"`
	BlockCoinPoints int `yaml:"block_coin_points"`
	StompPoints     int `yaml:"stomp_points"`
	LifeEveryPoints int `yaml:"life_every_points"`
	LifeEveryCoins  int `yaml:"life_every_coins"`
}

// PlatformerCamera defines the viewport.
type PlatformerCamera struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	MarginDivisor  float64 `yaml:"margin_divisor"` // dead-zone margin is width / divisor
}

// PlatformerWorld defines level building defaults.
type PlatformerWorld struct {
	Tile            float64 `yaml:"tile"`
	DefaultWidth    float64 `yaml:"default_width"`
	FinishProximity float64 `yaml:"finish_proximity"`
	FlagpoleHeight  float64 `yaml:"flagpole_height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "levels" or "none"
	MaxAt int    `yaml:"max_at"` // points, ticks or cleared levels at full difficulty
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
