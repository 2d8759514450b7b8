package logging

import (
	"sync"

	"go.uber.org/zap/zapcore"
)

// DefaultRingSize is the number of entries a Ring keeps when none is given.
const DefaultRingSize = 1000

// Ring keeps the most recent log entries, at every level.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewRing creates a Ring holding up to size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{entries: make([]Entry, size)}
}

// Core returns a zapcore.Core that records into the ring.
func (r *Ring) Core() zapcore.Core {
	return &ringCore{ring: r}
}

// Entries returns the recorded entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

func (r *Ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = e
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

type ringCore struct {
	ring   *Ring
	fields []zapcore.Field
}

func (c *ringCore) Enabled(zapcore.Level) bool { return true }

func (c *ringCore) With(fields []zapcore.Field) zapcore.Core {
	return &ringCore{
		ring:   c.ring,
		fields: append(c.fields[:len(c.fields):len(c.fields)], fields...),
	}
}

func (c *ringCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}

func (c *ringCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := fields
	if len(c.fields) > 0 {
		all = append(c.fields[:len(c.fields):len(c.fields)], fields...)
	}
	c.ring.add(newEntry(ent, all))
	return nil
}

func (c *ringCore) Sync() error { return nil }
