package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	if got, want := embeddedPlatformer(), DefaultPlatformerConfig(); got != want {
		t.Errorf("embedded defaults differ from DefaultPlatformerConfig:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadPlatformerCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	data := []byte("physics:\n  gravity: 2.5\nscoring:\n  starting_lives: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() error = %v", err)
	}
	if cfg.Physics.Gravity != 2.5 {
		t.Errorf("gravity = %v, expected 2.5", cfg.Physics.Gravity)
	}
	if cfg.Scoring.StartingLives != 7 {
		t.Errorf("starting lives = %d, expected 7", cfg.Scoring.StartingLives)
	}
	if cfg.Player.Speed != 3.8 {
		t.Errorf("unspecified player speed = %v, expected default 3.8", cfg.Player.Speed)
	}
}

func TestLoadPlatformerMissingCustomPath(t *testing.T) {
	if _, err := LoadPlatformer(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		lives   int
		enabled bool
	}{
		{DifficultyEasy, 5, true},
		{DifficultyNormal, 3, true},
		{DifficultyHard, 1, true},
		{DifficultyFixed, 3, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tc.preset)
			if cfg.Scoring.StartingLives != tc.lives {
				t.Errorf("lives = %d, expected %d", cfg.Scoring.StartingLives, tc.lives)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
		})
	}
}

func TestDifficultyEnemySpeed(t *testing.T) {
	disabled := NewDifficultyManager(DefaultPlatformerConfig().Difficulty)
	if got := disabled.EnemySpeed(Progress{Points: 50000, Ticks: 1000}); got != 1 {
		t.Errorf("disabled EnemySpeed() = %v, expected 1", got)
	}

	tests := []struct {
		name     string
		kind     string
		maxAt    int
		progress Progress
		expected float64
	}{
		{"score start", "score", 1000, Progress{}, 1.0},
		{"score half", "score", 1000, Progress{Points: 500}, 1.5},
		{"score capped", "score", 1000, Progress{Points: 5000}, 2.0},
		{"time", "time", 100, Progress{Ticks: 25}, 1.25},
		{"levels", "levels", 2, Progress{Cleared: 1}, 1.5},
		{"none keeps initial", "none", 10, Progress{Points: 10}, 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dm := NewDifficultyManager(DifficultyConfig{
				Enabled:     true,
				Progression: ProgressionConfig{Type: tc.kind, MaxAt: tc.maxAt},
				Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
			})
			if got := dm.EnemySpeed(tc.progress); got != tc.expected {
				t.Errorf("EnemySpeed(%+v) = %v, expected %v", tc.progress, got, tc.expected)
			}
		})
	}
}
