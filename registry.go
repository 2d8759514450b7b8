package stash

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry hands out one Cache per (key type, value type) pair.
//
// The first call to Shared for a pair creates the cache; every later call,
// from any goroutine, returns that same instance. Pairs are ordered, so
// Shared[string, int] and Shared[int, string] are different caches.
// A Registry never forgets a cache.
type Registry struct {
	mu     sync.Mutex
	caches map[typePair]registered
	cfg    registryConfig
}

// typePair identifies a cache by its ordered key and value types.
// reflect.Type values are comparable and unique per type.
type typePair struct {
	key   reflect.Type
	value reflect.Type
}

func (p typePair) String() string {
	return p.key.String() + "->" + p.value.String()
}

type statser interface {
	Len() int
	Stats() Snapshot
}

type registered struct {
	name  string
	cache any // *Cache[K, V] for the pair it is stored under
	view  statser
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{clock: realClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry{
		caches: make(map[typePair]registered),
		cfg:    cfg,
	}
}

// Shared returns the registry's cache for keys of type K and values of type V,
// creating it on first use.
func Shared[K comparable, V any](r *Registry) *Cache[K, V] {
	id := typePair{
		key:   reflect.TypeFor[K](),
		value: reflect.TypeFor[V](),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.caches[id]
	if !ok {
		name := id.String()
		c := New[K, V](
			WithClock[K, V](r.cfg.clock),
			WithName[K, V](name),
		)
		reg = registered{name: name, cache: c, view: c}
		r.caches[id] = reg
	}

	c, ok := reg.cache.(*Cache[K, V])
	if !ok {
		// Only a *Cache[K, V] is ever stored under id.
		panic(fmt.Sprintf("stash: registry entry %s holds %T", id, reg.cache))
	}
	return c
}

// Len returns the number of caches created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.caches)
}

// Each calls fn for every registered cache in name order.
// fn runs without the registry lock held.
func (r *Registry) Each(fn func(name string, stats Snapshot, size int)) {
	r.mu.Lock()
	regs := make([]registered, 0, len(r.caches))
	for _, reg := range r.caches {
		regs = append(regs, reg)
	}
	r.mu.Unlock()

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].name < regs[j].name
	})

	for _, reg := range regs {
		fn(reg.name, reg.view.Stats(), reg.view.Len())
	}
}
