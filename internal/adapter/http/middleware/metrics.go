package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware records per-request counters and latency.
type MetricsMiddleware struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(requests *prometheus.CounterVec, duration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{requests: requests, duration: duration}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.requests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.duration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses path parameters to keep label cardinality
// bounded: /accounts/01ABC -> /accounts/:id.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/accounts/") {
		rest := path[len("/accounts/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/accounts/:id" + rest[i:]
		}
		if rest != "" {
			return "/accounts/:id"
		}
	}

	return path
}
