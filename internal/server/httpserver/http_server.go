// Package httpserver wires the extraction API onto a net/http server.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/baristalabs/mastrena/internal/config"
	derrors "github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/metrics"
	"github.com/baristalabs/mastrena/internal/server/handlers"
	smw "github.com/baristalabs/mastrena/internal/server/middleware"
	"github.com/baristalabs/mastrena/internal/service"
)

// Runtime exposes daemon state to monitoring handlers.
type Runtime = handlers.DaemonInterface

// Options carries optional server collaborators.
type Options struct {
	// Registry enables the Prometheus scrape endpoint when non-nil.
	Registry *prom.Registry
}

// Server manages the extraction HTTP endpoints.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	opts       Options

	extractionHandlers *handlers.ExtractionHandlers
	analyticsHandlers  *handlers.AnalyticsHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, svc *service.ExtractionService, runtime Runtime, opts Options) *Server {
	s := &Server{
		cfg:  cfg,
		opts: opts,
	}

	s.extractionHandlers = handlers.NewExtractionHandlers(svc)
	s.analyticsHandlers = handlers.NewAnalyticsHandlers(svc)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(runtime)

	s.mchain = smw.Chain(slog.Default(), derrors.NewHTTPErrorAdapter(slog.Default()))

	return s
}

// Handler builds the routed handler with the middleware chain applied.
// Exposed for httptest-driven tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", s.extractionHandlers.HandleStart)
	mux.HandleFunc("/metrics", s.extractionHandlers.HandleHistory)
	mux.HandleFunc("/healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("/api/status", s.monitoringHandlers.HandleStatus)
	mux.HandleFunc("/api/trends", s.analyticsHandlers.HandleTrends)
	mux.HandleFunc("/api/alerts", s.analyticsHandlers.HandleAlerts)
	if s.opts.Registry != nil {
		mux.Handle("/debug/prometheus", metrics.HTTPHandler(s.opts.Registry))
	}
	return s.mchain(mux)
}

// Start binds the configured address and serves until the context ends.
// The listener is pre-bound so startup failures surface immediately instead
// of from the serving goroutine.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("http startup failed: %w", err)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Std(),
		WriteTimeout: s.cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("HTTP server started", slog.String("addr", s.cfg.Server.Addr))
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
