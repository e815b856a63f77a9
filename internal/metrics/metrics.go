package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourney_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tourney_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourney_login_attempts_total",
		Help: "Login attempts by role and result",
	}, []string{"role", "result"})

	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourney_mutations_total",
		Help: "Store mutations by operation and result",
	}, []string{"operation", "result"})

	cleanupRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourney_cleanup_removed_total",
		Help: "References removed by cascade cleanup",
	}, []string{"collection"})

	cleanupRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourney_cleanup_runs_total",
		Help: "Number of cascade cleanup passes",
	})

	panicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourney_http_panics_total",
		Help: "Handler panics caught by the recovery middleware",
	}, []string{"method", "route"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveLogin counts a login attempt. result is "success" or "failure".
func ObserveLogin(role, result string) {
	loginAttempts.WithLabelValues(role, result).Inc()
}

// ObserveMutation counts a store mutation and whether it was applied
func ObserveMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	mutations.WithLabelValues(operation, result).Inc()
}

// ObserveCleanup records one cleanup pass and what it removed
func ObserveCleanup(fixtures, registrations int) {
	cleanupRuns.Inc()
	cleanupRemoved.WithLabelValues("fixtures").Add(float64(fixtures))
	cleanupRemoved.WithLabelValues("registrations").Add(float64(registrations))
}

// ObservePanic counts a recovered handler panic
func ObservePanic(r *http.Request) {
	panicsRecovered.WithLabelValues(r.Method, routeName(r)).Inc()
}

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
