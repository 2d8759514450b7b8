// Package stash provides a generic in-memory cache with per-entry
// time-to-live, and a registry that shares one cache per key/value type pair.
//
// # Overview
//
// A Cache holds values of one type V under keys of one type K. Every entry
// carries its own deadline, set when it is saved and movable with
// GetAndRenew. There is no background goroutine: expired entries are swept
// by Save, Set and Purge, which pop due deadlines off a min-heap.
//
// # Basic Usage
//
//	cache := stash.New[string, int]()
//
//	// Store a value for ten seconds
//	cache.Save("key", 42, 10*time.Second)
//
//	// Read it back
//	if v, ok := cache.Get("key"); ok {
//		fmt.Println(v)
//	}
//
//	// Keep it around for another minute
//	cache.GetAndRenew("key", time.Minute)
//
// # Lazy Expiry
//
// Get and GetAndRenew never sweep. An entry whose deadline has passed stays
// visible until the next Save, Set or Purge:
//
//	cache.Save("a", 1, 40*time.Millisecond)
//	time.Sleep(50 * time.Millisecond)
//
//	cache.Get("a")   // 1, true: nothing has swept yet
//	cache.Purge()
//	cache.Get("a")   // 0, false
//
// Renewals and overwrites leave the old heap entry behind. When that entry
// comes due the sweep sees that the key's deadline moved and discards it
// instead of evicting the key.
//
// # Shared Caches
//
// A Registry returns the same Cache for the same pair of types, so
// unrelated packages can share a cache without declaring it up front:
//
//	reg := stash.NewRegistry()
//
//	logs := stash.Shared[RequestID, []Entry](reg)
//	logs.Save(id, entries, time.Minute)
//
//	// elsewhere, same instance
//	entries, ok := stash.Shared[RequestID, []Entry](reg).Get(id)
//
// The key and value types are ordered: Shared[string, int] and
// Shared[int, string] are independent caches.
//
// # Testing
//
// Inject a custom clock to control time in tests:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	clock := &fakeClock{now: time.Now()}
//	cache := stash.New[string, int](stash.WithClock[string, int](clock))
//
//	cache.Save("key", 42, time.Minute)
//	clock.now = clock.now.Add(2 * time.Minute)
//	cache.Purge()
//	_, ok := cache.Get("key") // ok == false
//
// Registries accept a clock with RegistryClock.
//
// # Thread Safety
//
// All Cache and Registry methods are safe for concurrent use. Each Cache
// guards its state with a single sync.Mutex; distinct caches never share a
// lock. Values are returned as stored, so a slice, map or pointer value is
// shared with every other reader and must be synchronized by the caller if
// it is mutated.
package stash
