package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tilesim SSH server",
	Long: `Start an SSH server that lets users connect and play maps.

Each SSH connection gets its own world and the map menu.
Runs are recorded in the server's database (all users share the history).

Address and host key default to the server section of the config.

Host key handling:
  - If --host-key or server.host_key_path is set, uses that key file
  - Otherwise, auto-generates a key at ~/.tilesim/host_key

Examples:
  tilesim serve                           # Listen on the configured address
  tilesim serve --ssh :2222               # Listen on port 2222
  tilesim serve --host-key ./my_host_key  # Use specific host key
  tilesim serve --max-sessions 4          # Refuse the fifth concurrent user

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Maximum concurrent sessions (0 = unlimited, -1 = from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := app.logger
	srvCfg := app.config.Server

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = net.JoinHostPort(srvCfg.Host, strconv.Itoa(srvCfg.Port))
	cfg.HostKeyPath = srvCfg.HostKeyPath
	cfg.MaxSessions = srvCfg.MaxSessions
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Runtime = app.runtime

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagMaxSessions >= 0 {
		cfg.MaxSessions = flagMaxSessions
	}

	pack := loadPack()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, pack, store, logger.WithPrefix("tilesim-ssh"))
	if err != nil {
		logger.Fatal("cannot create server", "error", err)
	}

	fmt.Printf("Starting tilesim SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
	}
}
