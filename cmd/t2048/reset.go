package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagResetScores bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved game",
	Long: `Delete the saved game so the next 'play' starts fresh.
With --scores the high score table is cleared as well.

Examples:
  t2048 reset
  t2048 reset --key 2048:ssh:alice
  t2048 reset --scores`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear all recorded scores")
}

func runReset(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	key := cfg.Storage.SnapshotKey
	deleted, err := store.DeleteSnapshot(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting saved game: %v\n", err)
		os.Exit(1)
	}
	if deleted {
		fmt.Printf("Deleted saved game %q.\n", key)
	} else {
		fmt.Printf("No saved game under %q.\n", key)
	}

	if flagResetScores {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cleared all scores.")
	}
}
