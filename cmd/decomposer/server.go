package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/artpar/decomposer/internal/shell/api"
	"github.com/artpar/decomposer/internal/shell/convert"
)

// =============================================================================
// Server
// =============================================================================

// Server serves the conversion API.
type Server struct {
	config     *Config
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) *Server {
	handler := api.NewHandler(convert.NewService(logger), logger, cfg.Server.MaxBodyBytes, Version)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      handler.Routes(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}
}

// Start listens and blocks until ctx is cancelled or the server fails.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return &CommandError{Op: "Listen", Err: err, ExitCode: ExitHTTPServerError}
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and blocks until ctx is cancelled or the server fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return &CommandError{Op: "Serve", Err: err, ExitCode: ExitHTTPServerError}
	case <-ctx.Done():
		s.logger.Info("received shutdown signal")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return &CommandError{Op: "Shutdown", Err: err, ExitCode: ExitHTTPServerError}
	}

	s.logger.Info("shutdown complete")
	return nil
}
