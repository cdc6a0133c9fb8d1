// Package metrics exposes Prometheus collectors for the resolution engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchRequestsTotal counts batch resolutions by outcome: resolved,
	// cached, rejected, failed.
	BatchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "titlematch_batch_requests_total",
		Help: "Total number of batch resolution requests by outcome.",
	}, []string{"outcome"})

	// BatchDuration tracks end-to-end batch resolution latency.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "titlematch_batch_duration_seconds",
		Help:    "Duration of batch resolutions in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// CatalogQueriesTotal counts queries issued against the catalog store.
	CatalogQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "titlematch_catalog_queries_total",
		Help: "Total number of catalog queries executed.",
	})

	// CacheHitsTotal / CacheMissesTotal count result cache lookups.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "titlematch_cache_hits_total",
		Help: "Total number of result cache hits.",
	})
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "titlematch_cache_misses_total",
		Help: "Total number of result cache misses.",
	})

	// ProviderFetchDuration tracks bulk dataset fetch latency per provider.
	ProviderFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "titlematch_provider_fetch_duration_seconds",
		Help:    "Duration of provider bulk fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	// SearchRequestsTotal counts interactive searches by provider.
	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "titlematch_search_requests_total",
		Help: "Total number of interactive search requests.",
	}, []string{"provider"})
)

// RecordBatchDuration records the time taken for one batch resolution.
func RecordBatchDuration(start time.Time) {
	BatchDuration.Observe(time.Since(start).Seconds())
}

// RecordProviderFetch records the time taken for one provider bulk fetch.
func RecordProviderFetch(provider string, start time.Time) {
	ProviderFetchDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
