package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks HTTP requests by route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// DiscoveriesTotal counts discovery calls by the source that served them.
	DiscoveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharmafast_discoveries_total",
			Help: "Total store discovery calls by winning source",
		},
		[]string{"source"},
	)

	// PlacesFailures counts failed Places lookups (any cause, incl. open breaker).
	PlacesFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmafast_places_failures_total",
			Help: "Total failed Google Places directory lookups",
		},
	)

	// DetailsMisses counts per-store details enrichments that returned nothing.
	DetailsMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmafast_places_details_miss_total",
			Help: "Total best-effort place details lookups that failed",
		},
	)

	// CircuitBreakerState is 0=closed, 1=open, 2=half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit"},
	)
)

// PrometheusMiddleware records request counts and latency for every route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(c.Request.Method, c.FullPath(), status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(duration)
	}
}
