package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mraof/gbjam5/internal/config"
	"github.com/mraof/gbjam5/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Runs are stored per server, so all
users share the same records.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key from config, generated on first start

Examples:
  gbjam5 serve                           # Listen on :23234
  gbjam5 serve --ssh :2222               # Listen on port 2222
  gbjam5 serve --host-key ./my_host_key  # Use specific host key
  gbjam5 serve --db ./records.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (0 = from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		die(err)
	}
	logger := newLogger(os.Stderr)
	logger.SetPrefix("gbjam5-ssh")

	cfg := tui.SSHServerConfig{
		Address:     e.cfg.SSH.Address,
		HostKeyPath: config.ExpandHome(e.cfg.SSH.HostKey),
		IdleTimeout: e.cfg.SSH.IdleTimeout,
		Game:        e.runtime,
		Life:        e.life,
		Death:       e.death,
		Hold:        e.cfg.HoldWindow(),
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store := e.openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, e.bundle, store, logger)
	if err != nil {
		die(err)
	}

	fmt.Printf("Starting gbjam5 SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		die(err)
	}
}
