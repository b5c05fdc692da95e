package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagClearScores bool
	flagPlain       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [engine]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for an engine.

On a terminal this opens the interactive scoreboard; pass --plain
or pipe the output to print a table instead.

Examples:
  breakout scores
  breakout scores intcode --plain
  breakout scores breakout --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the engine")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table even on a terminal")
}

func runScores(_ *cobra.Command, args []string) error {
	engineID := "breakout"
	if len(args) == 1 {
		engineID = args[0]
	}
	if !engine.Exists(engineID) {
		return fmt.Errorf("unknown engine %q, run 'breakout list' to see registered engines", engineID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(engineID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", engineID)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, engineID, width, height)
	}

	return printScores(store, engineID)
}

func printScores(store *storage.Store, engineID string) error {
	scores, err := store.TopScores(engineID, 10)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", engineID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'breakout play --engine %s' to set the first high score!\n", engineID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-12s  %s\n", i+1, entry.Score, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(engineID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.Games, stats.AvgScore)
	}
	return nil
}
