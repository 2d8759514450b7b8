package stash

import "time"

// entry is one pending expiry in the queue. It is an index only: the
// authoritative deadline for key lives in Cache.deadlines.
type entry[K comparable] struct {
	key       K
	expiresAt time.Time
}

func (e entry[K]) isExpired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// deadline is the authoritative expiry of a stored key.
type deadline struct {
	at time.Time
	// queued reports whether an entry carrying exactly at is still pending
	// in the queue.
	queued bool
}
