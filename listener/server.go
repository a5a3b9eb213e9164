package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// ReadHeaderTimeout bounds reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server owns one http.Server and its TCP listener.
type Server struct {
	name       string
	config     Config
	server     *http.Server
	onServeErr func()
	logger     *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a Server. The config is defaulted and validated. The
// onServeErr callback, if non-nil, runs when Serve fails after Start.
func NewServer(name string, handler http.Handler, cfg Config, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &Server{
		name:   name,
		config: cfg,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		onServeErr: onServeErr,
		logger:     slog.Default().With(slog.String("listener", name)),
	}, nil
}

// Start binds the address and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	ln, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("failed to listen", slog.String("address", s.server.Addr), slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("starting HTTP listener", slog.String("address", ln.Addr().String()))

	go s.serve(ln)

	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.server.Serve(ln)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	s.logger.Error("HTTP listener error", slog.Any("error", err))

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Addr returns the bound address after Start, or the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.config.Address
}

// Stop shuts the server down gracefully, waiting for in-flight conversions.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP listener")

	err := s.server.Shutdown(ctx)
	if err != nil {
		s.logger.Error("shutdown failed", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
