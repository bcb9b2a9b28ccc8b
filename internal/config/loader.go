package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadT2048 loads the 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default.
// Files are decoded over the defaults, so a file may set only the fields it cares about.
func LoadT2048(customPath string) (T2048Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("t2048.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/t2048.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultT2048YAML)
	if err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return T2048Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
