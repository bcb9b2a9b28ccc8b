package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

// SettingsFromConfig maps the loaded configuration onto game settings.
func SettingsFromConfig(cfg config.T2048Config, seed int64) Settings {
	return Settings{
		Size:         cfg.Board.Size,
		WinTile:      board.Tile(cfg.Board.WinTile),
		FourChance:   cfg.Board.SpawnFourChance,
		HistoryLimit: cfg.History.Limit,
		UndoEnabled:  cfg.History.UndoEnabled,
		Seed:         seed,
	}
}
