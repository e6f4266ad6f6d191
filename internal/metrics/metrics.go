// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes request latency per method/path/status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// AuthAttempts counts sign-in outcomes.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"outcome"}, // outcome: success, rejected
	)

	// TasksByStatus tracks how many tasks sit in each workflow state.
	TasksByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tasks_by_status",
			Help: "Current number of tasks per status",
		},
		[]string{"status"},
	)

	// OverdueTasks tracks open tasks past their due date.
	OverdueTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tasks_overdue",
			Help: "Open tasks whose due date has passed",
		},
	)
)

// RecordAuthAttempt increments the sign-in outcome counter.
func RecordAuthAttempt(success bool) {
	outcome := "rejected"
	if success {
		outcome = "success"
	}
	AuthAttempts.WithLabelValues(outcome).Inc()
}

// RequestTimer is a chi middleware observing request durations. The chi
// route pattern is used as the path label to keep cardinality bounded.
func RequestTimer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(
			r.Method,
			pattern,
			strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}
