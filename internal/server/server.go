// Package server exposes the application over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kamipad/stash/internal/app"
	"github.com/kamipad/stash/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the /api routes plus /metrics and /health.
type Server struct {
	app     *app.App
	metrics *metrics.HTTP
	server  *http.Server
}

// New creates a Server listening on the App's configured address.
func New(a *app.App) *Server {
	s := &Server{
		app:     a,
		metrics: metrics.NewHTTP(a.Metrics(), app.MetricsNamespace),
	}
	s.server = &http.Server{
		Addr:              a.Config().Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/{$}", s.withRequestLog(http.HandlerFunc(s.index)))
	mux.Handle("GET /api/logs", s.withRequestLog(http.HandlerFunc(s.logs)))
	mux.Handle("GET /api/log/{req}", s.withRequestLog(http.HandlerFunc(s.logByRequest)))

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.app.Metrics(), promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return s.instrument(mux)
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called (blocking).
func (s *Server) Start() error {
	s.app.Log.Info("listening", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
