// Package observability exposes Prometheus metrics for the generation layer
// and the HTTP API.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationAttempts counts raw provider calls per model, including
	// retries.
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codesync_generation_attempts_total",
			Help: "Total generation calls issued to the provider",
		},
		[]string{"model"},
	)

	// GenerationOutcomes counts finished gateway invocations by outcome
	// ("success" or the failure kind).
	GenerationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codesync_generation_outcomes_total",
			Help: "Final outcomes of logical generation requests",
		},
		[]string{"outcome"},
	)

	// HTTPRequests counts handled HTTP requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codesync_http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// ContestFetches counts contest-source fetches by source and result.
	ContestFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codesync_contest_fetches_total",
			Help: "Contest listing fetches per source",
		},
		[]string{"source", "result"},
	)
)
