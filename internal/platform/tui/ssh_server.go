package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/mraof/gbjam5/internal/assets"
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/storage"
	"github.com/mraof/gbjam5/internal/world"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file. Wish generates the key
	// on first start.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Game  core.RuntimeConfig
	Life  core.Palette
	Death core.Palette
	Hold  time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	life, death := world.DefaultPalettes()
	return SSHServerConfig{
		Address:     ":23234",
		HostKeyPath: ".ssh/gbjam5_ed25519",
		IdleTimeout: 10 * time.Minute,
		Game:        core.DefaultConfig(),
		Life:        life,
		Death:       death,
		Hold:        DefaultHold,
	}
}

// SSHServer serves one independent game per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	bundle *assets.Bundle
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// runs are not recorded.
func NewSSHServer(cfg SSHServerConfig, bundle *assets.Bundle, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gbjam5-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		bundle: bundle,
		store:  store,
		logger: logger,
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(cfg.HostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// NewSession builds the game and model for one player.
func (s *SSHServer) NewSession(user string) (Model, error) {
	logger := s.logger.With("user", user)
	game, err := world.New(s.bundle, s.config.Game,
		world.WithLogger(logger),
		world.WithPalettes(s.config.Life, s.config.Death),
	)
	if err != nil {
		return Model{}, err
	}
	return NewModel(game, Options{
		Store:    s.store,
		Player:   user,
		Hold:     s.config.Hold,
		TickRate: s.config.Game.TickRate,
		Logger:   logger,
	}), nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model, err := s.NewSession(sshSession.User())
	if err != nil {
		s.logger.Error("cannot start game", "user", sshSession.User(), "err", err)
		return nil, nil
	}
	model.opts.Renderer = bubbletea.MakeRenderer(sshSession)
	model.blocks = NewHalfBlocks(model.opts.Renderer)
	model.width, model.height = pty.Window.Width, pty.Window.Height

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
