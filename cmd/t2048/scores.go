package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagScoresSize  int
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores, optionally for one board size.

Examples:
  t2048 scores
  t2048 scores --size 4
  t2048 scores --limit 25
  t2048 scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresSize, "size", 0, "Only show scores for this board size (0 = all sizes)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, flagScoresSize, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(flagScoresSize, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "all sizes"
	if flagScoresSize > 0 {
		title = fmt.Sprintf("%dx%d", flagScoresSize, flagScoresSize)
	}
	fmt.Printf("High Scores - 2048 (%s)\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %-4s  %-12s  %s\n", "Rank", "Score", "Tile", "Size", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-4s  %-12s  %s\n", "----", "-----", "----", "----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		size := fmt.Sprintf("%dx%d", entry.BoardSize, entry.BoardSize)
		fmt.Printf("  %-4d  %-10d  %-6d  %-4s  %-12s  %s\n", i+1, entry.Score, entry.MaxTile, size, entry.Player, dateStr)
	}

	// Show stats
	stats, err := store.GetStats(flagScoresSize)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
}
