package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultT2048Config())
	}
}

func TestLoadCustomPathOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	yaml := "board:\n  size: 6\nhistory:\n  undo_enabled: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048() failed: %v", err)
	}
	if cfg.Board.Size != 6 || cfg.History.UndoEnabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Unset fields keep their defaults
	if cfg.Board.WinTile != 2048 || cfg.History.Limit != 25 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadT2048(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("board:\n  size: 12\n"), 0o644)
	if _, err := LoadT2048(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*T2048Config)
	}{
		{"size too small", func(c *T2048Config) { c.Board.Size = 1 }},
		{"size too large", func(c *T2048Config) { c.Board.Size = 10 }},
		{"win tile not power of two", func(c *T2048Config) { c.Board.WinTile = 1000 }},
		{"win tile too small", func(c *T2048Config) { c.Board.WinTile = 2 }},
		{"negative spawn chance", func(c *T2048Config) { c.Board.SpawnFourChance = -0.1 }},
		{"spawn chance above one", func(c *T2048Config) { c.Board.SpawnFourChance = 1.5 }},
		{"zero history limit", func(c *T2048Config) { c.History.Limit = 0 }},
		{"empty snapshot key", func(c *T2048Config) { c.Storage.SnapshotKey = "" }},
		{"zero tick rate", func(c *T2048Config) { c.TickRate = 0 }},
	}

	if err := DefaultT2048Config().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
