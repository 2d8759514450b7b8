package stash

import "time"

const (
	// DefaultTTL is the time-to-live used by Set when no WithTTL option is given.
	DefaultTTL = 5 * time.Minute
)

type config[K comparable, V any] struct {
	ttl   time.Duration
	clock Clock
	name  string
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		ttl:   DefaultTTL,
		clock: realClock{},
	}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// WithTTL sets the default time-to-live used by Set.
// Save always takes its TTL explicitly.
func WithTTL[K comparable, V any](d time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		c.ttl = d
	}
}

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock[K comparable, V any](clk Clock) Option[K, V] {
	return func(c *config[K, V]) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithName labels the cache. Registries name their caches after the key
// and value types; metrics report the name.
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(c *config[K, V]) {
		c.name = name
	}
}

type registryConfig struct {
	clock Clock
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// RegistryClock sets the clock handed to every cache the registry creates.
func RegistryClock(clk Clock) RegistryOption {
	return func(c *registryConfig) {
		if clk != nil {
			c.clock = clk
		}
	}
}
