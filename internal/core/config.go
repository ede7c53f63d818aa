package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // Unused by the platformer; kept for registry compatibility
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what the host needs to know about a running game.
type GameState struct {
	Score    int
	Coins    int
	Lives    int
	Level    string // id of the level currently loaded
	GameOver bool   // run ended; the host saves the score once
	Won      bool   // run ended because the last level was cleared
	Paused   bool
}

// Milestone records a cleared level. Hosts persist it as a level result.
type Milestone struct {
	LevelID string
	Score   int
	Coins   int
	Lives   int
	Ticks   int
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State     GameState
	Milestone *Milestone // non-nil on the tick a level was cleared
}
