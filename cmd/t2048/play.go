package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSize   int
	flagNoUndo bool
	flagNoSave bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start playing 2048. A saved game is resumed; otherwise a new one starts.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U/Backspace      - Undo the last move
  R                - New game
  X                - Toggle undo (before the first move)
  +/-              - Change board size (before the first move)
  ?                - Show all keys
  Q/Esc/Ctrl+C     - Quit (the game is saved)

Examples:
  t2048 play
  t2048 play --size 6
  t2048 play --no-undo
  t2048 play --no-save --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size 2-9 for a new game (overrides config)")
	playCmd.Flags().BoolVar(&flagNoUndo, "no-undo", false, "Disable undo for a new game")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Keep the game in memory only")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSize != 0 {
		cfg.Board.Size = flagSize
	}
	if flagNoUndo {
		cfg.History.UndoEnabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so debug logs go to a file
	logger := log.New(io.Discard)
	if cfg.Log.Level == "debug" {
		logFile, err := os.OpenFile("2048-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open debug log: %v\n", err)
		} else {
			defer logFile.Close()
			logger = log.NewWithOptions(logFile, log.Options{ReportTimestamp: true, Prefix: "2048"})
			logger.SetLevel(log.DebugLevel)
		}
	}

	var (
		store     *storage.Store
		snapshots t2048.SnapshotStore = storage.NewMemoryStore()
	)
	if !flagNoSave {
		var err error
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open database, the game will not be saved: %v\n", err)
		} else {
			snapshots = store
			defer store.Close()
		}
	}

	game, err := t2048.New(
		t2048.SettingsFromConfig(cfg, flagSeed),
		t2048.WithStore(snapshots, cfg.Storage.SnapshotKey),
		t2048.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := game.Load(); err != nil {
		if errors.Is(err, t2048.ErrCorruptSnapshot) {
			fmt.Fprintf(os.Stderr, "Warning: saved game was unreadable, starting a new one: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	// Flags only shape a new game; a resumed game keeps its own settings
	if !game.Started() {
		applyNewGameFlags(cmd, game)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.ModelOptions{
		Player:   os.Getenv("USER"),
		TickRate: cfg.TickRate,
		Logger:   logger,
		Width:    width,
		Height:   height,
	}
	if store != nil {
		opts.Scores = store
	}

	if err := tui.Run(game, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// applyNewGameFlags applies --size and --no-undo to a game that has not started.
func applyNewGameFlags(cmd *cobra.Command, game *t2048.Game) {
	if cmd.Flags().Changed("size") {
		if err := game.SetBoardSize(flagSize); err != nil && !errors.Is(err, t2048.ErrPersist) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagNoUndo && !game.UndoDisabled() {
		if err := game.ToggleUndo(); err != nil && !errors.Is(err, t2048.ErrPersist) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
