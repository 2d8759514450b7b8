package stash

import (
	"sync"
	"time"
)

// Cache is a generic in-memory cache where every entry carries its own
// time-to-live.
//
// Expired entries are removed lazily: Save, Set and Purge sweep the expiry
// queue before returning, while Get and GetAndRenew never do. No goroutine is
// started, so a Cache needs no Close.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	data      map[K]V
	deadlines map[K]deadline
	queue     expiryQueue[K]
	cfg       config[K, V]
	stats     Stats
}

// New creates a new Cache with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[K, V]{
		data:      make(map[K]V),
		deadlines: make(map[K]deadline),
		cfg:       cfg,
	}
}

// Save purges expired entries and then stores value under key until
// now+ttl, replacing any previous value and deadline. It returns the stored
// value.
//
// A ttl of zero or less stores an entry that is already expired; it is
// removed by the next Save, Set or Purge rather than by this call.
func (c *Cache[K, V]) Save(key K, value V, ttl time.Duration) V {
	now := c.cfg.clock.Now()
	expiresAt := now.Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purge(now)

	c.queue.push(entry[K]{key: key, expiresAt: expiresAt})
	c.deadlines[key] = deadline{at: expiresAt, queued: true}
	c.data[key] = value
	c.stats.save()

	return value
}

// Set is Save with the default TTL configured by WithTTL.
func (c *Cache[K, V]) Set(key K, value V) V {
	return c.Save(key, value, c.cfg.ttl)
}

// Get returns the value stored under key.
//
// Get does not purge and does not look at the deadline, so an entry whose
// TTL has passed is still returned until a Save, Set or Purge sweeps it.
// Call Purge first when that matters.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if !ok {
		c.stats.miss()
		return v, false
	}
	c.stats.hit()
	return v, true
}

// GetAndRenew returns the value stored under key and moves its deadline to
// now+ttl. It reports false, and changes nothing, if key is not stored.
func (c *Cache[K, V]) GetAndRenew(key K, ttl time.Duration) (V, bool) {
	now := c.cfg.clock.Now()
	expiresAt := now.Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if !ok {
		c.stats.miss()
		return v, false
	}

	prev := c.deadlines[key]
	next := deadline{at: expiresAt, queued: prev.queued && prev.at.Equal(expiresAt)}
	if expiresAt.Before(prev.at) {
		// The pending entry would fire too late for a shorter deadline.
		c.queue.push(entry[K]{key: key, expiresAt: expiresAt})
		next.queued = true
	}
	c.deadlines[key] = next

	c.stats.hit()
	c.stats.renew()
	return v, true
}

// Purge removes every entry whose deadline has passed.
func (c *Cache[K, V]) Purge() {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purge(now)
}

// purge pops due queue entries until the earliest one lies in the future.
// A popped entry only removes its key when it carries the key's current
// deadline; anything else is stale and is dropped.
func (c *Cache[K, V]) purge(now time.Time) {
	for {
		next, ok := c.queue.peek()
		if !ok || !next.isExpired(now) {
			return
		}
		e := c.queue.pop()

		d, ok := c.deadlines[e.key]
		switch {
		case !ok:
			c.stats.drop()
		case d.at.Equal(e.expiresAt):
			delete(c.deadlines, e.key)
			delete(c.data, e.key)
			c.stats.expire()
		default:
			c.stats.drop()
			if !d.queued {
				// Renewed past this entry without queueing; index the
				// current deadline so the key still expires.
				c.queue.push(entry[K]{key: e.key, expiresAt: d.at})
				d.queued = true
				c.deadlines[e.key] = d
			}
		}
	}
}

// Len returns the number of stored entries.
// May include expired entries that haven't been purged yet.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.data)
}

// Name returns the name set with WithName.
func (c *Cache[K, V]) Name() string {
	return c.cfg.name
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K, V]) Stats() Snapshot {
	return c.stats.Snapshot()
}
