package stash

import "sync/atomic"

// Stats holds cache statistics using atomic counters for lock-free reads.
type Stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	saves       atomic.Int64
	renewals    atomic.Int64
	expirations atomic.Int64
	stale       atomic.Int64
}

func (s *Stats) hit()    { s.hits.Add(1) }
func (s *Stats) miss()   { s.misses.Add(1) }
func (s *Stats) save()   { s.saves.Add(1) }
func (s *Stats) renew()  { s.renewals.Add(1) }
func (s *Stats) expire() { s.expirations.Add(1) }
func (s *Stats) drop()   { s.stale.Add(1) }

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	Hits   int64
	Misses int64
	Saves  int64
	// Renewals counts successful GetAndRenew calls.
	Renewals int64
	// Expirations counts entries removed by a purge.
	Expirations int64
	// Stale counts queue entries discarded because the key was renewed,
	// overwritten or already gone.
	Stale int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no lookups.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Saves:       s.saves.Load(),
		Renewals:    s.renewals.Load(),
		Expirations: s.expirations.Load(),
		Stale:       s.stale.Load(),
	}
}
