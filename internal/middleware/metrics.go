package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheHits counts global feed requests served from the page cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_hits_total",
		Help: "Total number of global feed requests served from the page cache",
	})

	// FeedCacheMisses counts global feed requests computed from the store.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_misses_total",
		Help: "Total number of global feed requests that missed the page cache",
	})
)

// InitMetrics creates the Prometheus middleware for request-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
