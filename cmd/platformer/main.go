// platformer is a side-scrolling platformer that runs in the terminal.
//
// Usage:
//
//	platformer play [level]   - Play, optionally starting on a level
//	platformer menu           - Pick a starting level interactively
//	platformer levels         - List the campaign levels
//	platformer list           - List registered games
//	platformer scores [level] - Show best runs, or the best clears of a level
//	platformer serve          - Start the SSH server for remote play
//	platformer web            - Serve levels and scores over HTTP
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed
//	--db <path>           - Set database path (default: ~/.platformer/scores.db)
//	--config <path>       - Use a custom platformer config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels-dir <dir>    - Add level files from a directory
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "A side-scrolling platformer in your terminal",
	Long: `Run right, stomp enemies, collect coins and reach the flag.

Available commands:
  play     - Play the campaign directly
  menu     - Pick a starting level
  levels   - Show the campaign levels
  list     - Show registered games
  scores   - View best runs and level clears
  serve    - Start SSH server for remote play
  web      - Serve levels and scores over HTTP

Examples:
  platformer play
  platformer play 1-2 --difficulty hard
  platformer play --levels-dir ./levels --watch
  platformer menu
  platformer serve --ssh :2222 --http :8080
  platformer scores 1-1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		platformer.SetConfigPath(flagConfig)
		platformer.SetDifficultyPreset(flagDifficulty)
		platformer.SetLevelDir(flagLevelsDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of extra level files (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}
