package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bookhub",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	reviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookhub",
			Subsystem: "reviews",
			Name:      "created_total",
			Help:      "Total number of reviews created.",
		},
	)

	booksDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookhub",
			Subsystem: "books",
			Name:      "deleted_total",
			Help:      "Total number of books deleted with their reviews.",
		},
	)

	assetOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookhub",
			Subsystem: "assets",
			Name:      "operations_total",
			Help:      "Asset store uploads and deletes by outcome.",
		},
		[]string{"operation", "success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		reviewsCreated,
		booksDeleted,
		assetOperations,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func RecordReviewCreated() {
	reviewsCreated.Inc()
}

func RecordBookDeleted() {
	booksDeleted.Inc()
}

func RecordAssetOperation(operation string, success bool) {
	assetOperations.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}
