package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Address     string
	Rules       config.CashMergeConfig
	Store       *storage.Store // Optional
	Collector   *analytics.Collector
	Logger      *log.Logger
	MaxSessions int
}

// Server is the HTTP API server.
type Server struct {
	config  ServerConfig
	manager *Manager
	http    *http.Server
	logger  *log.Logger
}

// NewServer wires the manager, handler and router.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cashmerge-api",
		})
	}

	manager := NewManager(ManagerConfig{
		Rules:       cfg.Rules,
		Store:       cfg.Store,
		Collector:   cfg.Collector,
		Logger:      cfg.Logger,
		MaxSessions: cfg.MaxSessions,
	})
	handler := NewHandler(HandlerDeps{Manager: manager, Store: cfg.Store})

	return &Server{
		config:  cfg,
		manager: manager,
		logger:  cfg.Logger,
		http: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewRouter(handler, cfg.Logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve serves until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.manager.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting requests and ends every live game.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.manager.Close()
	return err
}
