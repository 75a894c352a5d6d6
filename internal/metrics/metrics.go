// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Similar-recipe lookups
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommend_requests_total",
			Help: "Similar-recipe lookups by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "error"
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_recommend_candidates",
			Help:    "Candidate pool size scored per lookup",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_recommend_duration_seconds",
			Help:    "Time spent ranking a candidate pool",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_recommend_cache_hits_total",
			Help: "Similar-recipe lookups served from cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_recommend_cache_misses_total",
			Help: "Similar-recipe lookups that had to be computed",
		},
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
