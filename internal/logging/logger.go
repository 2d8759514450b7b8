package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls how the application logger is built.
type Config struct {
	// Level is the minimum level written to Output ("debug", "info", ...).
	// The ring records every level regardless.
	Level string

	// Development switches Output to a human-readable console encoding.
	Development bool

	// RingSize bounds the in-memory ring. Zero means DefaultRingSize.
	RingSize int

	// Output receives the encoded entries. Nil means stderr.
	Output io.Writer
}

// New builds the application logger. Entries at or above cfg.Level are
// encoded to cfg.Output; all entries are recorded in the returned Ring.
func New(cfg Config) (*zap.Logger, *Ring, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = lvl
	}

	var enc zapcore.Encoder
	if cfg.Development {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}

	ring := NewRing(cfg.RingSize)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), level),
		ring.Core(),
	)

	return zap.New(core, zap.AddCaller()), ring, nil
}
