package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs or level clears",
	Long: `Without arguments, shows the best finished runs and overall stats.
With a level id, shows the best clears of that level.

Examples:
  platformer scores
  platformer scores 1-1
  platformer scores --limit 25
  platformer scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded runs and level clears")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(platformer.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if len(args) == 1 {
		return printLevelResults(store, args[0])
	}
	return printRuns(store)
}

func printRuns(store *storage.Store) error {
	scores, err := store.TopScores(platformer.GameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("Best runs")
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "Rank", "Score", "Coins", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "------", "----")
	for i, e := range scores {
		result := "lost"
		if e.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-5s  %-6s  %s\n",
			i+1, e.Score, e.Coins, e.LevelID, result, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(platformer.GameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Levels cleared: %d  Best: %d  Average: %.0f\n",
			stats.GamesCount, stats.Wins, stats.LevelsCleared, stats.HighScore, stats.AvgScore)
	}
	return nil
}

func printLevelResults(store *storage.Store, levelID string) error {
	results, err := store.LevelResults(platformer.GameID, levelID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving level results: %w", err)
	}

	fmt.Printf("Best clears - level %s\n", levelID)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("Nobody has cleared this level yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "Rank", "Score", "Time", "Coins", "Lives", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "----", "-----", "-----", "----")
	for i, r := range results {
		secs := float64(r.Ticks) / float64(max(flagFPS, 1))
		fmt.Printf("  %-4d  %-8d  %-8s  %-5d  %-5d  %s\n",
			i+1, r.Score, fmt.Sprintf("%.1fs", secs), r.Coins, r.Lives, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
