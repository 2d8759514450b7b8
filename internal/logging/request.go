package logging

import (
	"sync"
	"time"

	"github.com/kamipad/stash"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestStore accumulates the log entries of one request.
type RequestStore struct {
	id      RequestID
	mu      sync.Mutex
	entries []Entry
}

// ID returns the request the store belongs to.
func (s *RequestStore) ID() RequestID {
	return s.id
}

// Entries returns a copy of the entries recorded so far.
func (s *RequestStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Flush saves the entries recorded so far into cache under the store's
// RequestID for ttl, replacing whatever was saved before.
func (s *RequestStore) Flush(cache *stash.Cache[RequestID, []Entry], ttl time.Duration) []Entry {
	return cache.Save(s.id, s.Entries(), ttl)
}

func (s *RequestStore) add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
}

// NewRequestLogger returns a logger for one request. Entries go to parent as
// usual and are also recorded, at every level, in the returned store.
// Every entry carries the request_id field.
func NewRequestLogger(parent *zap.Logger, id RequestID, fields ...zap.Field) (*zap.Logger, *RequestStore) {
	store := &RequestStore{id: id}

	logger := parent.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &requestCore{parent: core, store: store}
	}))

	fields = append([]zap.Field{zap.String(RequestIDKey, id.String())}, fields...)
	return logger.With(fields...), store
}

type requestCore struct {
	parent zapcore.Core
	store  *RequestStore
	fields []zapcore.Field
}

func (c *requestCore) Enabled(zapcore.Level) bool { return true }

func (c *requestCore) With(fields []zapcore.Field) zapcore.Core {
	return &requestCore{
		parent: c.parent.With(fields),
		store:  c.store,
		fields: append(c.fields[:len(c.fields):len(c.fields)], fields...),
	}
}

func (c *requestCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	ce = c.parent.Check(ent, ce)
	return ce.AddCore(ent, c)
}

// Write records into the store only; the parent was added to the checked
// entry by Check.
func (c *requestCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := fields
	if len(c.fields) > 0 {
		all = append(c.fields[:len(c.fields):len(c.fields)], fields...)
	}
	c.store.add(newEntry(ent, all))
	return nil
}

func (c *requestCore) Sync() error {
	return c.parent.Sync()
}
