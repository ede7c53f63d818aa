package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded platformer configuration.
// It mirrors defaults/platformer.yaml and is used when the embedded file
// cannot be parsed.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:       1.2,
			JumpVelocity:  12.8,
			BumpVelocity:  1.2,
			DeathKick:     13,
			ShellKillKick: 10,
			FallLimit:     210,
		},
		Player: PlatformerPlayer{
			Width:       16,
			SmallHeight: 16,
			BigHeight:   32,
			Speed:       3.8,
			FinishCreep: 3,
		},
		Enemies: PlatformerEnemies{
			GoombaSpeed:   0.7,
			KoopaSpeed:    0.5,
			KoopaHeight:   24,
			ShellSpeed:    3,
			ShellWidth:    16,
			ShellHeight:   17,
			ShellNudge:    5,
			MushroomSpeed: 1.3,
		},
		Animation: PlatformerAnimation{
			PlayerWalkEvery: 5,
			ResizeEvery:     5,
			EnemyWalkEvery:  10,
			CoinSpinEvery:   13,
		},
		Timers: PlatformerTimers{
			CollectibleRemove: 3,
			GoombaRemove:      48,
			ShellRemove:       24,
			ShellRearm:        12,
			ShellKick:         3,
			ResizeEnd:         60,
			InvincibleEnd:     90,
			DeathDrop:         30,
			Respawn:           120,
			GameOverReset:     180,
			LevelAdvance:      360,
		},
		Scoring: PlatformerScoring{
			StartingLives:   3,
			CoinPoints:      200,
			BlockCoinPoints: 50,
			StompPoints:     100,
			LifeEveryPoints: 100000,
			LifeEveryCoins:  100,
		},
		Camera: PlatformerCamera{
			ViewportWidth:  760,
			ViewportHeight: 240,
			MarginDivisor:  6,
		},
		World: PlatformerWorld{
			Tile:            16,
			DefaultWidth:    3400,
			FinishProximity: 50,
			FlagpoleHeight:  112,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 100000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
