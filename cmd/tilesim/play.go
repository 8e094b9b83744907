package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilesim/internal/assets"
	"github.com/vovakirdan/tilesim/internal/platform/tui"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play a map",
	Long: `Play a map in the terminal. Without a map, a menu lists the loaded
maps with their run statistics; esc in a map returns to it.

Controls:
  Arrows/WASD  - Move (see key_bindings in the config)
  Space/Up     - Jump
  P            - Pause
  R            - Restart
  Esc          - Back to the map menu
  Q/Ctrl+C     - Quit

The terminal UI owns the screen, so logs go to --log-file or nowhere.

Examples:
  tilesim play
  tilesim play demo
  tilesim play arena --fps 30 --log-file tilesim.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, args []string) {
	pack := loadPack()

	logger, closeLog := playLogger()
	defer closeLog()

	// Open run storage
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if len(args) == 1 {
		if _, err := playMap(pack, store, logger, args[0]); err != nil {
			app.logger.Fatal("cannot play map", "map", args[0], "error", err)
		}
		return
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(pack, store, width, height)
		if err != nil {
			app.logger.Error("menu failed", "error", err)
			return
		}
		width, height = menuResult.Width, menuResult.Height

		switch {
		case menuResult.Quit:
			return

		case menuResult.WantsHistory:
			goBack, err := tui.RunHistory(store, width, height)
			if err != nil {
				app.logger.Error("history failed", "error", err)
			}
			if !goBack {
				return
			}

		default:
			back, err := playMap(pack, store, logger, menuResult.MapID)
			if err != nil {
				app.logger.Error("cannot play map", "map", menuResult.MapID, "error", err)
				continue
			}
			if !back {
				return
			}
		}
	}
}

// playMap runs one map until the player quits or goes back to the menu.
func playMap(pack *assets.Pack, store *storage.Store, logger *log.Logger, mapID string) (backToMenu bool, err error) {
	session, err := sim.New(pack, mapID, storage.ModePlay, app.runtime, logger)
	if err != nil {
		return false, err
	}
	return tui.Run(session, store, app.runtime, logger)
}

// playLogger returns the logger used while the terminal UI runs.
func playLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		app.logger.Warn("cannot open log file, logging disabled", "path", flagLogFile, "error", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilesim",
		Level:           app.config.Level(),
	})
	return logger, func() { f.Close() }
}
