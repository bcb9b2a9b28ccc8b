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
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const sshKeyPrefix = "2048:ssh:"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the game configuration every session starts from.
	Game config.T2048Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultT2048Config(),
	}
}

// SSHServer serves one independent 2048 game per SSH session. Each user's game is
// saved under its own key, scores go to a shared table.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store // nil when the database could not be opened
	snapshots t2048.SnapshotStore
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "2048-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	store, err := storage.Open(cfg.Game.Storage.DBPath)
	if err != nil {
		// Continue without storage, games live for the server's lifetime
		logger.Warn("could not open database, games will not survive a restart", "error", err)
		srv.snapshots = storage.NewMemoryStore()
	} else {
		srv.store = store
		srv.snapshots = store
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// SessionKey returns the snapshot key for an SSH user. The prefix keeps SSH keys apart
// from the local player's key.
func SessionKey(user string) string {
	if user == "" {
		user = "anonymous"
	}
	return sshKeyPrefix + user
}

// teaHandler creates a game and a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	logger := s.sessionLogger(sshSession)
	key := SessionKey(sshSession.User())

	game, err := t2048.New(
		t2048.SettingsFromConfig(s.config.Game, time.Now().UnixNano()),
		t2048.WithStore(s.snapshots, key),
		t2048.WithLogger(logger),
	)
	if err != nil {
		logger.Error("cannot create game", "error", err)
		return nil, nil
	}
	if err := game.Load(); err != nil {
		// The game is playable either way
		logger.Warn("starting a new game", "key", key, "error", err)
	}

	opts := ModelOptions{
		Player:   sshSession.User(),
		TickRate: s.config.Game.TickRate,
		Logger:   logger,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	}
	if s.store != nil {
		opts.Scores = s.store
	}

	return NewModel(game, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionLogger returns a logger tagged with the session's ID, stored in the session
// context by loggingMiddleware.
func (s *SSHServer) sessionLogger(sshSession ssh.Session) *log.Logger {
	if id, ok := sshSession.Context().Value(sessionIDKey{}).(string); ok {
		return s.logger.With("session", id, "user", sshSession.User())
	}
	return s.logger.With("user", sshSession.User())
}

type sessionIDKey struct{}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		sshSession.Context().SetValue(sessionIDKey{}, id)

		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
