// Package gin serves the insights API over HTTP using the Gin framework.
package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/storescope"
	"github.com/gin-gonic/gin"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Default server timeouts. WriteTimeout covers a full extraction, which
// fetches several pages.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 2 * time.Minute
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger

	// Insights performs extractions.
	Insights storescope.InsightsService
	// Reports, when set, exposes saved reports.
	Reports storescope.ReportService
	// Now stamps health responses. Defaults to time.Now.
	Now func() time.Time

	ShutdownTimeout time.Duration
}

// NewServer creates a Server listening on addr. A nil logger discards
// output. Callers choose the Gin mode with gin.SetMode before calling.
func NewServer(addr string, insights storescope.InsightsService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := gin.New()

	s := &Server{
		router:          router,
		logger:          logger,
		Insights:        insights,
		Now:             time.Now,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	return s
}

// Handler returns the HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting HTTP server", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server", "timeout", s.ShutdownTimeout)

	// The parent context is already cancelled; shutdown needs its own.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return <-errCh
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group(APIPrefix)
	api.POST("/fetch/insights", s.handleFetchInsights)
	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:id", s.handleGetReport)
}
