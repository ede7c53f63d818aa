package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing, from the first level or from the given level id.

Controls:
  Left/Right, A/D - Walk
  Space/Up/W      - Jump
  P/Esc           - Pause
  R               - Restart (after game over)
  B               - Leave (while paused or after game over)
  Ctrl+S          - Save a screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, slower enemies
  normal - The default tuning
  hard   - One life, faster enemies
  fixed  - Enemy speed never ramps up

Examples:
  platformer play
  platformer play 1-3
  platformer play --difficulty hard
  platformer play --config ./my-platformer.yaml
  platformer play --levels-dir ./levels --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files from --levels-dir when they change")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	var start string
	if len(args) == 1 {
		start = args[0]
	}

	game, err := registry.CreateAt(platformer.GameID, start)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	opts := tui.Options{Logger: logger}
	if flagWatch {
		w, err := startWatcher(logger)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func startWatcher(logger *log.Logger) (*levels.Watcher, error) {
	if flagLevelsDir == "" {
		return nil, errors.New("--watch needs --levels-dir")
	}
	w, err := levels.NewWatcher(flagLevelsDir)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", flagLevelsDir, err)
	}
	logger.Info("watching levels", "dir", flagLevelsDir)
	return w, nil
}
