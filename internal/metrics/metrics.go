// Package metrics holds the Prometheus collectors for the API and the
// recommendation engine. Collectors register on the default registry and
// are served by promhttp at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation paths
const (
	PathProfile  = "profile"
	PathFallback = "fallback"
)

var (
	// Recommendation engine
	RecommendationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spire_recommendations_created_total",
			Help: "Total number of recommendation rows newly created",
		},
	)

	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spire_recommendation_runs_total",
			Help: "Per-user generation runs by scoring path",
		},
		[]string{"path"}, // "profile", "fallback"
	)

	RecommendationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spire_recommendation_failures_total",
			Help: "Per-user generation runs that returned an error",
		},
	)

	RecommendationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spire_recommendation_run_duration_seconds",
			Help:    "Duration of a single user's generation run",
			Buckets: prometheus.DefBuckets,
		},
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spire_candidates_scored",
			Help:    "Number of candidates with a positive score per run",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250, 500},
		},
	)

	PreferenceRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spire_preference_refreshes_total",
			Help: "Favorite category refreshes by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spire_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spire_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordGeneration records one user's generation run
func RecordGeneration(path string, scored, created int, duration time.Duration, err error) {
	RecommendationRunDuration.Observe(duration.Seconds())
	if err != nil {
		RecommendationFailures.Inc()
		return
	}
	RecommendationRuns.WithLabelValues(path).Inc()
	CandidatesScored.Observe(float64(scored))
	RecommendationsCreated.Add(float64(created))
}

// RecordPreferenceRefresh records one favorite category refresh
func RecordPreferenceRefresh(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	PreferenceRefreshes.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an API request metric
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
