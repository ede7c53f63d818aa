package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered games",
	Long:  `Shows the games registered with the host.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the levels in play order: the built-in levels followed by
any level files found in --levels-dir. A file whose id matches a built-in
level replaces it.

Examples:
  platformer levels
  platformer levels --levels-dir ./levels`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	campaign, err := levels.Campaign(flagLevelsDir)
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	fmt.Printf("  %-6s  %-24s  %s\n", "ID", "Name", "Next")
	fmt.Printf("  %-6s  %-24s  %s\n", "--", "----", "----")
	for _, l := range campaign.Levels() {
		next := l.NextID()
		if next == "" {
			next = "-"
		}
		fmt.Printf("  %-6s  %-24s  %s\n", l.ID, l.Name, next)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to start on a level.")
	return nil
}
