package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate: 60,
		LogLevel: "info",
		Render: RenderConfig{
			Width:  320,
			Height: 192,
		},
		Camera: CameraConfig{
			MarginX: 0.3,
			MarginY: 0.3,
		},
		KeyBindings: map[string]string{
			"left":  "left",
			"a":     "left",
			"right": "right",
			"d":     "right",
			"up":    "jump",
			"w":     "jump",
			"space": "jump",
		},
		KeyReleaseTicks: 8,
		DBPath:          "tilesim.db",
		StartMap:        "demo",
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2323,
			HostKeyPath: ".ssh/tilesim_host_ed25519",
			MaxSessions: 16,
		},
	}
}

// DefaultYAML returns the embedded default engine YAML.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
