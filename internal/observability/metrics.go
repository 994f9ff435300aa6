package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	scoreMutationsTotal   *prometheus.CounterVec
	recomputeRunsTotal    *prometheus.CounterVec
	lockNotificationsSent prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thesis_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "thesis_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thesis_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		scoreMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thesis_score_mutations_total",
			Help: "Score create/update/delete operations accepted by the guards.",
		}, []string{"action"})

		recomputeRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thesis_recompute_runs_total",
			Help: "Aggregate recompute executions by outcome.",
		}, []string{"outcome"})

		lockNotificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "thesis_lock_notifications_sent_total",
			Help: "Score notification emails dispatched on council lock.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			scoreMutationsTotal,
			recomputeRunsTotal,
			lockNotificationsSent,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ScoreMutations exposes the counter for accepted score mutations.
func ScoreMutations() *prometheus.CounterVec {
	RegisterMetrics()
	return scoreMutationsTotal
}

// RecomputeRuns exposes the counter for aggregate recompute executions.
func RecomputeRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return recomputeRunsTotal
}

// LockNotifications exposes the counter for lock notification emails.
func LockNotifications() prometheus.Counter {
	RegisterMetrics()
	return lockNotificationsSent
}
