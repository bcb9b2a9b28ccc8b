// Package config provides YAML-based configuration loading for the 2048 game.
package config

import (
	"errors"
	"fmt"
	"math/bits"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board    BoardConfig   `yaml:"board"`
	History  HistoryConfig `yaml:"history"`
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
	TickRate int           `yaml:"tick_rate"`
}

// BoardConfig defines the board and spawning parameters.
type BoardConfig struct {
	Size            int     `yaml:"size"`
	WinTile         int64   `yaml:"win_tile"`
	SpawnFourChance float64 `yaml:"spawn_four_chance"`
}

// HistoryConfig defines undo behaviour.
type HistoryConfig struct {
	Limit       int  `yaml:"limit"`
	UndoEnabled bool `yaml:"undo_enabled"`
}

// StorageConfig defines where game state and scores are kept.
type StorageConfig struct {
	DBPath      string `yaml:"db_path"`
	SnapshotKey string `yaml:"snapshot_key"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Board size limits, mirrored from the board engine so config stays dependency-free.
const (
	MinBoardSize = 2
	MaxBoardSize = 9
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks that every field is within range.
func (c T2048Config) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("%w: board.size %d not in [%d, %d]", ErrInvalid, c.Board.Size, MinBoardSize, MaxBoardSize)
	}
	if c.Board.WinTile < 4 || bits.OnesCount64(uint64(c.Board.WinTile)) != 1 {
		return fmt.Errorf("%w: board.win_tile %d is not a power of two >= 4", ErrInvalid, c.Board.WinTile)
	}
	if c.Board.SpawnFourChance < 0 || c.Board.SpawnFourChance > 1 {
		return fmt.Errorf("%w: board.spawn_four_chance %v not in [0, 1]", ErrInvalid, c.Board.SpawnFourChance)
	}
	if c.History.Limit < 1 {
		return fmt.Errorf("%w: history.limit must be positive, got %d", ErrInvalid, c.History.Limit)
	}
	if c.Storage.SnapshotKey == "" {
		return fmt.Errorf("%w: storage.snapshot_key is empty", ErrInvalid)
	}
	if c.TickRate < 1 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	return nil
}
