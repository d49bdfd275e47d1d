// Package server exposes the projection engine over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rpgo/corpus-projector/internal/calculation"
	"github.com/rpgo/corpus-projector/internal/config"
)

// Server serves projections over fasthttp.
type Server struct {
	engine       *calculation.CalculationEngine
	parser       *config.InputParser
	logger       *slog.Logger
	maxBody      int
	readTimeout  time.Duration
	writeTimeout time.Duration
	now          func() time.Time
	// baseCtx bounds in-flight projections; cancelled on shutdown.
	baseCtx context.Context
}

// New creates a server around engine. A nil logger falls back to slog.Default.
func New(engine *calculation.CalculationEngine, settings config.ServerSettings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:       engine,
		parser:       config.NewInputParser(),
		logger:       logger.With("component", "server"),
		maxBody:      settings.MaxBodyBytes,
		readTimeout:  time.Duration(settings.ReadTimeoutSec) * time.Second,
		writeTimeout: time.Duration(settings.WriteTimeoutSec) * time.Second,
		now:          time.Now,
		baseCtx:      context.Background(),
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "corpus-projector",
		ReadTimeout:        s.readTimeout,
		WriteTimeout:       s.writeTimeout,
		MaxRequestBodySize: s.maxBody,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
