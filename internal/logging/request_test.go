package logging

import (
	"testing"
	"time"

	"github.com/kamipad/stash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	parent := zap.New(core)

	id := NewRequestID()
	log, store := NewRequestLogger(parent, id, zap.String("path", "/api/"))
	assert.Equal(t, id, store.ID())

	log.Debug("details")
	log.Info("handled", zap.Int("status", 200))

	// the parent keeps its level filter
	require.Equal(t, 1, observed.Len())
	got := observed.All()[0]
	assert.Equal(t, "handled", got.Message)
	assert.Equal(t, id.String(), got.ContextMap()[RequestIDKey])

	// the store records everything
	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "details", entries[0].Message)
	assert.Equal(t, "debug", entries[0].Level)
	assert.Equal(t, id.String(), entries[0].RequestID)
	assert.Equal(t, "/api/", entries[0].Fields["path"])
	assert.Equal(t, "handled", entries[1].Message)
	assert.EqualValues(t, 200, entries[1].Fields["status"])
}

func TestRequestLoggerWith(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log, store := NewRequestLogger(zap.New(core), NewRequestID())

	log.With(zap.String("user", "alice")).Info("hello")

	require.Equal(t, 1, observed.Len())
	assert.Equal(t, "alice", observed.All()[0].ContextMap()["user"])

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Fields["user"])
}

func TestRequestStoreFlush(t *testing.T) {
	cache := stash.New[RequestID, []Entry]()
	log, store := NewRequestLogger(zap.NewNop(), NewRequestID())

	log.Info("first")
	store.Flush(cache, time.Minute)

	got, ok := cache.Get(store.ID())
	require.True(t, ok)
	assert.Equal(t, []string{"first"}, messages(got))

	// later entries replace the saved snapshot on the next flush
	log.Info("second")
	got, _ = cache.Get(store.ID())
	assert.Len(t, got, 1)

	saved := store.Flush(cache, time.Minute)
	assert.Equal(t, []string{"first", "second"}, messages(saved))
	got, _ = cache.Get(store.ID())
	assert.Equal(t, []string{"first", "second"}, messages(got))
}
