package server

import (
	"context"
	"net/http"
	"time"

	"github.com/kamipad/stash/internal/logging"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request's id back to the client, which can
// then fetch the request's logs from /api/log/{id}.
const RequestIDHeader = "X-Request-Id"

type ctxKey struct{}

// Logger returns the request logger stored in ctx, or a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument records request count and latency by matched route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordRequest(r.Method, route, rec.status, time.Since(start))
	})
}

// withRequestLog gives each request its own logger and saves what it
// logged into the request log cache once the handler returns.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := logging.NewRequestID()
		log, store := s.app.RequestLog(id,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		w.Header().Set(RequestIDHeader, id.String())

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log.Debug("request started", zap.String("remote", r.RemoteAddr))

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, log)))

		log.Info("request finished",
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
		store.Flush(s.app.RequestLogs(), s.app.Config().LogTTL)
	})
}
