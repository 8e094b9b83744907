// Package config provides YAML-based engine configuration loading for the
// tilesim binary.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesim/internal/core"
)

// EngineConfig contains all configuration of a simulation run.
type EngineConfig struct {
	TickRate        int               `yaml:"tick_rate"`
	Seed            int64             `yaml:"seed"`
	LogLevel        string            `yaml:"log_level"`
	Render          RenderConfig      `yaml:"render"`
	Camera          CameraConfig      `yaml:"camera"`
	KeyBindings     map[string]string `yaml:"key_bindings"`
	KeyReleaseTicks int               `yaml:"key_release_ticks"`
	DBPath          string            `yaml:"db_path"`
	AssetsDir       string            `yaml:"assets_dir"`
	StartMap        string            `yaml:"start_map"`
	Server          ServerConfig      `yaml:"server"`
}

// RenderConfig defines the view size in pixels.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig defines how far the followed actor may drift from the view
// center, as a fraction of the view size.
type CameraConfig struct {
	MarginX float64 `yaml:"margin_x"`
	MarginY float64 `yaml:"margin_y"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
	MaxSessions int    `yaml:"max_sessions"`
}

// Validate checks value ranges.
func (c EngineConfig) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("tick_rate must be in 1..1000, got %d", c.TickRate)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Camera.MarginX < 0 || c.Camera.MarginX > 0.5 || c.Camera.MarginY < 0 || c.Camera.MarginY > 0.5 {
		return fmt.Errorf("camera margins must be in 0..0.5, got %v, %v", c.Camera.MarginX, c.Camera.MarginY)
	}
	if c.KeyReleaseTicks < 1 {
		return fmt.Errorf("key_release_ticks must be at least 1, got %d", c.KeyReleaseTicks)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// Runtime returns the settings handed to the platform layer.
func (c EngineConfig) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ViewW = c.Render.Width
	rc.ViewH = c.Render.Height
	rc.TickRate = c.TickRate
	rc.Seed = c.Seed
	rc.MarginX = c.Camera.MarginX
	rc.MarginY = c.Camera.MarginY
	rc.KeyReleaseTicks = c.KeyReleaseTicks
	if len(c.KeyBindings) > 0 {
		rc.Bindings = core.Bindings(c.KeyBindings)
	}
	return rc
}

// Level returns the configured log level, defaulting to info.
func (c EngineConfig) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
