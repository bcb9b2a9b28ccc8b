package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var flagShowList bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved game",
	Long: `Print the board, score and status of a saved game without playing it.

Examples:
  t2048 show
  t2048 show --key 2048:ssh:alice
  t2048 show --list`,
	Args: cobra.NoArgs,
	Run:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowList, "list", false, "List every saved game")
}

func runShow(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if flagShowList {
		infos, err := store.ListSnapshots()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing saved games: %v\n", err)
			os.Exit(1)
		}
		if len(infos) == 0 {
			fmt.Println("No saved games.")
			return
		}
		fmt.Printf("  %-24s  %-8s  %s\n", "Key", "Bytes", "Updated")
		fmt.Printf("  %-24s  %-8s  %s\n", "---", "-----", "-------")
		for _, info := range infos {
			fmt.Printf("  %-24s  %-8d  %s\n", info.Key, info.Size, info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	key := cfg.Storage.SnapshotKey
	data, err := store.LoadSnapshot(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading saved game: %v\n", err)
		os.Exit(1)
	}
	if data == nil {
		fmt.Printf("No saved game under %q.\n", key)
		return
	}

	// A storeless game decodes the snapshot without writing anything back
	game, err := t2048.New(t2048.SettingsFromConfig(cfg, flagSeed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := game.UnmarshalSnapshot(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("2048 - %s (%dx%d)\n", key, game.Size(), game.Size())
	fmt.Println()
	fmt.Print(game.Board().String())
	fmt.Println()
	fmt.Printf("Score: %d  Best: %d  Status: %s\n", game.Score(), game.Best(), game.Status())
	if record, err := store.HighScore(game.Size()); err == nil && record > 0 {
		fmt.Printf("Record (%dx%d): %d\n", game.Size(), game.Size(), record)
	}
	if game.UndoDisabled() {
		fmt.Println("Undo: off")
	} else {
		fmt.Printf("Undo: %d move(s) available\n", game.UndoAvailable())
	}
}
