package stash_test

import (
	"fmt"
	"time"

	"github.com/kamipad/stash"
)

func ExampleCache() {
	cache := stash.New[string, int]()

	cache.Save("answer", 42, 5*time.Minute)

	if v, ok := cache.Get("answer"); ok {
		fmt.Println(v)
	}
	// Output: 42
}

func ExampleCache_Purge() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := stash.ClockFunc(func() time.Time { return now })

	cache := stash.New[string, int](stash.WithClock[string, int](clock))
	cache.Save("a", 1, time.Second)

	now = now.Add(2 * time.Second)

	// expired, but nothing has swept yet
	_, ok := cache.Get("a")
	fmt.Println("before purge:", ok)

	cache.Purge()
	_, ok = cache.Get("a")
	fmt.Println("after purge:", ok)

	// Output:
	// before purge: true
	// after purge: false
}

func ExampleCache_GetAndRenew() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := stash.ClockFunc(func() time.Time { return now })

	cache := stash.New[string, string](stash.WithClock[string, string](clock))
	cache.Save("session", "alice", time.Minute)

	now = now.Add(50 * time.Second)
	cache.GetAndRenew("session", time.Minute)

	now = now.Add(50 * time.Second)
	cache.Purge()

	v, ok := cache.Get("session")
	fmt.Println(v, ok)
	// Output: alice true
}

func ExampleShared() {
	type requestID string

	reg := stash.NewRegistry()

	// two unrelated callers ask for the same pair of types
	writer := stash.Shared[requestID, []string](reg)
	reader := stash.Shared[requestID, []string](reg)

	writer.Save("req-1", []string{"started", "finished"}, time.Minute)

	entries, _ := reader.Get("req-1")
	fmt.Println(entries)

	// swapping the key and value types gives a different cache
	stash.Shared[string, int](reg).Save("one", 1, time.Minute)
	fmt.Println(stash.Shared[int, string](reg).Len())
	// Output:
	// [started finished]
	// 0
}

func ExampleCache_Stats() {
	cache := stash.New[string, int]()

	cache.Save("a", 1, time.Minute)
	cache.Get("a") // hit
	cache.Get("b") // miss

	stats := cache.Stats()
	fmt.Printf("hits: %d, misses: %d, rate: %.0f%%\n",
		stats.Hits, stats.Misses, stats.HitRate()*100)

	// Output: hits: 1, misses: 1, rate: 50%
}
