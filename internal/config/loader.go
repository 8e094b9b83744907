package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EngineFile is the file name looked up in the config directories.
const EngineFile = "engine.yaml"

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.tilesim/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
//
// Every file is decoded over DefaultEngineConfig, so a file only needs the
// keys it changes. Key bindings from a file are added to the defaults.
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg, _, err := LoadEngineFrom(customPath)
	return cfg, err
}

// LoadEngineFrom is LoadEngine that also reports where the config came from.
func LoadEngineFrom(customPath string) (EngineConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultEngineConfig(), "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultEngineConfig(), "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(EngineFile), filepath.Join("configs", EngineFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultEngineYAML)
	if err != nil {
		return DefaultEngineConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

func decode(data []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilesim", "configs", filename)
}
