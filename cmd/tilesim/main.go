// tilesim runs tile-map worlds in the terminal.
//
// Usage:
//
//	tilesim maps                - List loaded maps
//	tilesim kinds               - List registered actor kinds
//	tilesim run <map>           - Simulate a map headless
//	tilesim play [map]          - Play a map, or pick one from the menu
//	tilesim serve               - Start SSH server for remote play
//	tilesim history             - Show recorded runs
//
// Global flags:
//
//	--config <path>     - Engine config YAML (default: search order, then embedded)
//	--assets <dir>      - Extra asset YAML directory, loaded over the demo pack
//	--fps <rate>        - Override tick rate
//	--seed <value>      - Override RNG seed
//	--db <path>         - Override run database path
//	--log-level <lvl>   - Override log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import actor kinds to register them
	_ "github.com/vovakirdan/tilesim/internal/actors"

	"github.com/vovakirdan/tilesim/internal/assets"
	"github.com/vovakirdan/tilesim/internal/config"
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagAssets   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

// app holds what every command needs, set up before the command runs.
var app struct {
	config  config.EngineConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilesim",
	Short: "tilesim - tile map worlds in your terminal",
	Long: `tilesim simulates 2D tile-map worlds with actors, collision,
camera following and fades, and draws them in the terminal.

Available commands:
  maps     - Show all loaded maps
  kinds    - Show all actor kinds maps can spawn
  run      - Simulate a map without a terminal UI
  play     - Play a map, or pick one from the menu
  serve    - Start SSH server for remote play
  history  - View recorded runs

Examples:
  tilesim maps
  tilesim run demo --ticks 600
  tilesim play arena
  tilesim serve
  tilesim history --map demo`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory of extra asset YAML files")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed override (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the engine config, applies flag overrides and creates the
// logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadEngineFrom(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("assets") {
		cfg.AssetsDir = flagAssets
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	app.config = cfg
	app.runtime = cfg.Runtime()
	app.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilesim",
		Level:           cfg.Level(),
	})
	app.logger.Debug("config loaded", "source", source)
	return nil
}

// loadPack loads the demo assets plus the configured asset directory.
func loadPack() *assets.Pack {
	pack, err := assets.Load(app.config.AssetsDir)
	if err != nil {
		app.logger.Fatal("cannot load assets", "dir", app.config.AssetsDir, "error", err)
	}
	return pack
}

// openStore opens the run database. Commands that can work without it get
// nil and a warning.
func openStore() *storage.Store {
	store, err := storage.Open(app.config.DBPath)
	if err != nil {
		app.logger.Warn("could not open run database, runs will not be recorded", "path", app.config.DBPath, "error", err)
		return nil
	}
	return store
}
