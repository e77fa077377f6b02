// Package server exposes the balance service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"balances/internal/logger"
	"balances/pkg/services"
)

const shutdownTimeout = 10 * time.Second

// Options configures the HTTP server.
type Options struct {
	Addr           string
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// Server serves the balance API.
type Server struct {
	service services.BalanceService
	opts    Options
	engine  *gin.Engine
	log     zerolog.Logger
}

// New creates a server and registers its routes.
func New(service services.BalanceService, opts Options) *Server {
	s := &Server{
		service: service,
		opts:    opts,
		engine:  gin.New(),
		log:     logger.WithComponent("http-server"),
	}

	s.engine.Use(gin.Recovery(), requestID(), accessLog(), timeout(opts.RequestTimeout))

	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/docs", s.docs)

	v1 := s.engine.Group("/api/v1")
	v1.POST("/sumInvoices", s.sumInvoices)

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const op = "Run"

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: shutdown failed: %w", op, err)
	}
	return nil
}
