package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kamipad/stash/internal/app"
	"github.com/kamipad/stash/internal/server"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := app.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "database directory (empty disables it)")
	flag.BoolVar(&cfg.ReadOnly, "read-only", cfg.ReadOnly, "open the database read-only")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum terminal log level")
	flag.BoolVar(&cfg.Development, "dev", cfg.Development, "human-readable console logs")
	flag.IntVar(&cfg.RingSize, "log-ring", cfg.RingSize, "number of recent log entries kept for /api/logs")
	flag.DurationVar(&cfg.LogTTL, "log-ttl", cfg.LogTTL, "how long request logs stay retrievable")
	flag.Parse()

	fmt.Printf("\nStarting %s - v%s...\n\n", app.Name, app.Version)

	// Signal-aware context is the root of ownership for the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kamipad: %v\n", err)
		return 1
	}
	defer a.Close()

	srv := server.New(a)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	select {
	case err := <-errc:
		if err != nil {
			a.Log.Error("server failed", zap.Error(err))
			return 1
		}
		return 0
	case <-ctx.Done():
		a.Log.Info("received interrupt signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("shutdown", zap.Error(err))
		return 1
	}
	if err := <-errc; err != nil {
		a.Log.Error("server failed", zap.Error(err))
		return 1
	}

	fmt.Println("Shutdown complete!")
	return 0
}
