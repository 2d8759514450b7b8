package app

import (
	"time"

	"github.com/kamipad/stash/internal/logging"
)

// Config holds the application settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DataDir is the database directory. Empty disables the database.
	DataDir string

	// ReadOnly opens the database with a shared lock.
	ReadOnly bool

	// LogLevel is the minimum level written to the terminal.
	LogLevel string

	// Development selects console log encoding.
	Development bool

	// RingSize is how many recent entries /api/logs can return.
	RingSize int

	// LogTTL is how long a request's log entries stay retrievable.
	LogTTL time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8000",
		DataDir:  "data",
		LogLevel: "info",
		RingSize: logging.DefaultRingSize,
		LogTTL:   10 * time.Minute,
	}
}
