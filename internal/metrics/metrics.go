// Package metrics exposes Prometheus instrumentation for the import
// service: HTTP traffic, import batches, and row-level outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shulebus"

var (
	// HTTP metrics.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Import metrics.
	ImportBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "imports",
			Name:      "batches_total",
			Help:      "Total number of import batches by entity type and mode",
		},
		[]string{"entity_type", "mode"},
	)

	ImportBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "imports",
			Name:      "batch_duration_seconds",
			Help:      "Import batch duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"entity_type"},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "imports",
			Name:      "rows_total",
			Help:      "Total number of rows processed by entity type and result",
		},
		[]string{"entity_type", "result"},
	)
)

// ObserveBatch records the outcome of one import batch.
func ObserveBatch(entityType, mode string, created, skipped int, elapsed time.Duration) {
	ImportBatchesTotal.WithLabelValues(entityType, mode).Inc()
	ImportBatchDuration.WithLabelValues(entityType).Observe(elapsed.Seconds())
	if created > 0 {
		ImportRowsTotal.WithLabelValues(entityType, "created").Add(float64(created))
	}
	if skipped > 0 {
		ImportRowsTotal.WithLabelValues(entityType, "skipped").Add(float64(skipped))
	}
}

// statusRecorder captures the response status for the HTTP middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request totals, latency and in-flight gauge for every
// route except /metrics itself.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
