// Package metrics holds Prometheus instruments shared across the
// platform.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ResolveCacheHitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_cache_hit_total",
			Help: "Tenant resolutions served from the Redis cache.",
		})

	ResolveCacheMissTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_cache_miss_total",
			Help: "Tenant resolutions that fell through to the store.",
		})

	ResolveStoreErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_store_errors_total",
			Help: "Store lookups that failed during tenant resolution.",
		})

	CacheErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_cache_errors_total",
			Help: "Redis operations that failed and were degraded to a miss or no-op.",
		})

	InvalidateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_cache_invalidate_total",
			Help: "Explicit tenant cache invalidations issued by mutation endpoints.",
		})
)

func init() {
	prometheus.MustRegister(
		ResolveCacheHitTotal,
		ResolveCacheMissTotal,
		ResolveStoreErrorsTotal,
		CacheErrorsTotal,
		InvalidateTotal,
	)
}
