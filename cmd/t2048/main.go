// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play            - Play (resumes the saved game)
//	t2048 serve           - Start SSH server, one game per user
//	t2048 scores          - Show high scores
//	t2048 show            - Print the saved board
//	t2048 move <dir>...   - Apply moves to the saved game
//	t2048 reset           - Delete the saved game
//
// Global flags:
//
//	--config <path>   - Custom config YAML
//	--db <path>       - Database path (default: ~/.arcade/2048.db)
//	--key <name>      - Snapshot key (default: 2048:state)
//	--seed <value>    - RNG seed for reproducible spawns
//	--fps <rate>      - Tick rate (default: 60)
//	--log-level <l>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagKey      string
	flagSeed     int64
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `2048 is the sliding-tile puzzle: slide the board in one of four
directions, equal tiles merge, and a new tile appears after every move.

The game is saved after every move and resumed on the next start.

Available commands:
  play     - Play 2048
  serve    - Start SSH server for remote play
  scores   - View high scores
  show     - Print the saved game
  move     - Apply moves without the TUI
  reset    - Delete the saved game

Examples:
  t2048 play
  t2048 play --size 5 --no-undo
  t2048 serve --ssh :2222
  t2048 scores --size 4`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagKey, "key", "", "Snapshot key (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig loads the config and applies global flag overrides.
func loadConfig() config.T2048Config {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagKey != "" {
		cfg.Storage.SnapshotKey = flagKey
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates the stderr logger at the configured level.
func newLogger(cfg config.T2048Config, prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the database or exits.
func openStore(cfg config.T2048Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}
