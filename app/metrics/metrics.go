// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PostsCreated counts posts accepted and persisted.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirper_posts_created_total",
		Help: "Number of posts successfully created.",
	})

	// PostsRateLimited counts post attempts rejected by the admission
	// controller.
	PostsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirper_posts_rate_limited_total",
		Help: "Number of post attempts rejected by the rate limiter.",
	})

	// PostsRejectedInvalid counts post attempts that failed content
	// validation before reaching the admission check.
	PostsRejectedInvalid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirper_posts_rejected_invalid_total",
		Help: "Number of post attempts rejected by content validation.",
	})

	// FeedCacheHits counts global feed reads served from cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirper_feed_cache_hits_total",
		Help: "Number of feed reads served from the cache.",
	})

	// RequestDuration observes HTTP handler latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chirper_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
