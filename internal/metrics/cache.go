package metrics

import (
	"github.com/kamipad/stash"
	"github.com/prometheus/client_golang/prometheus"
)

// CacheCollector exports the size and counters of every cache in a
// stash.Registry, labelled by cache name. Caches created after the
// collector is registered are picked up on the next scrape.
type CacheCollector struct {
	registry *stash.Registry

	entries     *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	saves       *prometheus.Desc
	renewals    *prometheus.Desc
	expirations *prometheus.Desc
	stale       *prometheus.Desc
}

// Compile-time interface assertion.
var _ prometheus.Collector = (*CacheCollector)(nil)

// NewCacheCollector creates a collector over registry.
func NewCacheCollector(registry *stash.Registry, namespace string) *CacheCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", name),
			help,
			[]string{"cache"},
			nil,
		)
	}

	return &CacheCollector{
		registry:    registry,
		entries:     desc("entries", "Entries currently stored, including expired ones not yet purged"),
		hits:        desc("hits_total", "Lookups that found the key"),
		misses:      desc("misses_total", "Lookups that did not find the key"),
		saves:       desc("saves_total", "Entries saved"),
		renewals:    desc("renewals_total", "Deadlines moved by GetAndRenew"),
		expirations: desc("expirations_total", "Entries removed by a purge"),
		stale:       desc("stale_total", "Stale expiry queue entries discarded by a purge"),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
	ch <- c.saves
	ch <- c.renewals
	ch <- c.expirations
	ch <- c.stale
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	c.registry.Each(func(name string, s stash.Snapshot, size int) {
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(size), name)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.saves, prometheus.CounterValue, float64(s.Saves), name)
		ch <- prometheus.MustNewConstMetric(c.renewals, prometheus.CounterValue, float64(s.Renewals), name)
		ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(s.Expirations), name)
		ch <- prometheus.MustNewConstMetric(c.stale, prometheus.CounterValue, float64(s.Stale), name)
	})
}
