// SPDX-License-Identifier: MIT

// Package metrics registers the Prometheus collectors for sync runs and the
// HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exoatlas_sync_duration_seconds",
		Help:    "Duration of catalog sync runs in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2.0, 10), // 0.5s .. ~256s
	})

	planetsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exoatlas_planets",
		Help: "Number of planets in the catalog after the last sync",
	})

	starsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exoatlas_stars",
		Help: "Number of host stars in the catalog after the last sync",
	})

	systemsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exoatlas_systems",
		Help: "Number of planetary systems in the catalog after the last sync",
	})

	lastSyncTime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exoatlas_last_sync_timestamp",
		Help: "Timestamp of the last successful sync (Unix timestamp)",
	})

	syncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exoatlas_sync_failures_total",
		Help: "Number of failed sync runs by reason",
	}, []string{"reason"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exoatlas_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exoatlas_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exoatlas_query_cache_hits_total",
		Help: "Dashboard query cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exoatlas_query_cache_misses_total",
		Help: "Dashboard query cache misses",
	})
)

// RecordSync publishes the outcome of a successful sync run.
func RecordSync(duration time.Duration, planets, stars, systems int) {
	syncDuration.Observe(duration.Seconds())
	planetsLoaded.Set(float64(planets))
	starsLoaded.Set(float64(stars))
	systemsLoaded.Set(float64(systems))
	lastSyncTime.Set(float64(time.Now().Unix()))
}

// IncSyncFailure counts a failed sync run.
func IncSyncFailure(reason string) {
	syncFailures.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest counts one served request.
func RecordHTTPRequest(route, method, status string, duration time.Duration) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncCacheHit counts a query cache hit.
func IncCacheHit() { cacheHits.Inc() }

// IncCacheMiss counts a query cache miss.
func IncCacheMiss() { cacheMisses.Inc() }

// SyncRecorder adapts the package-level collectors to the jobs package's
// recorder interface.
type SyncRecorder struct{}

func (SyncRecorder) RecordSync(duration time.Duration, planets, stars, systems int) {
	RecordSync(duration, planets, stars, systems)
}

func (SyncRecorder) IncSyncFailure(reason string) {
	IncSyncFailure(reason)
}
