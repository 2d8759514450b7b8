// Package app holds the application state shared by every component.
//
// An App is built once at startup with New and passed explicitly to the
// components that need it. There is no package-level instance.
package app

import (
	"fmt"
	"io"

	"github.com/kamipad/stash"
	"github.com/kamipad/stash/internal/data"
	"github.com/kamipad/stash/internal/logging"
	"github.com/kamipad/stash/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Application metadata.
const (
	Name        = "kamipad-server"
	Version     = "0.1.0"
	Description = "Kamipad server"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "kamipad"

// App wraps the entire application state.
type App struct {
	Log *zap.Logger

	cfg     Config
	ring    *logging.Ring
	caches  *stash.Registry
	db      *data.Database
	metrics *prometheus.Registry

	restoreStdLog func()
}

// Option customizes New.
type Option func(*options)

type options struct {
	logOutput io.Writer
	caches    *stash.Registry
}

// WithLogOutput sends terminal log output to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// WithRegistry uses caches instead of a fresh stash.Registry.
func WithRegistry(caches *stash.Registry) Option {
	return func(o *options) {
		o.caches = caches
	}
}

// New builds the application state from cfg.
func New(cfg Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.caches == nil {
		o.caches = stash.NewRegistry()
	}

	log, ring, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
		RingSize:    cfg.RingSize,
		Output:      o.logOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	log.Info("starting application", zap.String("version", Version))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewCacheCollector(o.caches, MetricsNamespace),
	)

	a := &App{
		Log:     log,
		cfg:     cfg,
		ring:    ring,
		caches:  o.caches,
		metrics: reg,
	}

	if cfg.DataDir != "" {
		flags := data.DefaultFlags()
		if cfg.ReadOnly {
			flags = data.ReadOnlyFlags()
		}
		db, err := data.Open(cfg.DataDir, flags)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		log.Info("database opened", zap.Stringer("database", db))
	}

	// Libraries logging through the standard logger end up here too.
	a.restoreStdLog = zap.RedirectStdLog(log.With(zap.Bool("library", true)))

	log.Debug("application initialized")
	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config {
	return a.cfg
}

// Caches returns the registry of shared caches.
func (a *App) Caches() *stash.Registry {
	return a.caches
}

// RequestLogs returns the cache holding each request's log entries.
func (a *App) RequestLogs() *stash.Cache[logging.RequestID, []logging.Entry] {
	return stash.Shared[logging.RequestID, []logging.Entry](a.caches)
}

// RequestLog creates a logger for one request. Entries are logged globally
// and also recorded in the returned store, which the caller flushes into
// RequestLogs when the request ends.
func (a *App) RequestLog(id logging.RequestID, fields ...zap.Field) (*zap.Logger, *logging.RequestStore) {
	return logging.NewRequestLogger(a.Log, id, fields...)
}

// AllLogs returns the latest log entries for the application.
func (a *App) AllLogs() []logging.Entry {
	return a.ring.Entries()
}

// Database returns the open database, or nil when DataDir was empty.
func (a *App) Database() *data.Database {
	return a.db
}

// Metrics returns the Prometheus registry the server exposes.
func (a *App) Metrics() *prometheus.Registry {
	return a.metrics
}

// Close releases the database lock and flushes the logger.
func (a *App) Close() error {
	a.Log.Info("stopping application")
	a.restoreStdLog()

	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	_ = a.Log.Sync()
	return err
}
