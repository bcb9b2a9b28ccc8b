package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Size:            4,
			WinTile:         2048,
			SpawnFourChance: 0.3,
		},
		History: HistoryConfig{
			Limit:       25,
			UndoEnabled: true,
		},
		Storage: StorageConfig{
			DBPath:      "~/.arcade/2048.db",
			SnapshotKey: "2048:state",
		},
		Log: LogConfig{
			Level: "info",
		},
		TickRate: 60,
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultT2048YAML
}
