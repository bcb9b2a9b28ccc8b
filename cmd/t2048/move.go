package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

var moveCmd = &cobra.Command{
	Use:   "move <direction>...",
	Short: "Apply moves to the saved game without the TUI",
	Long: `Apply one or more moves to the saved game and print the result.
Directions are up, down, left and right; "undo" takes back the last move.
A missing saved game is started fresh.

Examples:
  t2048 move left
  t2048 move up up right undo
  t2048 move --key 2048:ssh:alice down`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMove,
}

func runMove(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	// Parse everything first so a typo applies nothing
	steps := make([]func(*t2048.Game) error, 0, len(args))
	for _, arg := range args {
		if arg == "undo" {
			steps = append(steps, func(g *t2048.Game) error {
				ok, err := g.Undo()
				if err == nil && !ok {
					fmt.Println("Nothing to undo")
				}
				return err
			})
			continue
		}
		dir, err := board.ParseDirection(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		steps = append(steps, func(g *t2048.Game) error {
			out, err := g.Move(dir)
			if err == nil && !out.Moved {
				fmt.Printf("Nothing moves %s\n", dir)
			}
			return err
		})
	}

	store := openStore(cfg)
	defer store.Close()

	game, err := t2048.New(
		t2048.SettingsFromConfig(cfg, flagSeed),
		t2048.WithStore(store, cfg.Storage.SnapshotKey),
		t2048.WithLogger(newLogger(cfg, "2048")),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := game.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	for _, step := range steps {
		err := step(game)
		if errors.Is(err, t2048.ErrGameOver) {
			fmt.Println("Game over, no move is left")
			break
		}
		if err != nil && !errors.Is(err, t2048.ErrPersist) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	fmt.Print(game.Board().String())
	fmt.Printf("Score: %d  Best: %d  Status: %s\n", game.Score(), game.Best(), game.Status())
}
