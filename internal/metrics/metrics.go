package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeNoResults = "no_results"
	OutcomeError     = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "property_search_requests_total",
		Help: "Processed search requests by outcome (success, no_results, rejection kind, error).",
	}, []string{"outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "property_search_stage_duration_seconds",
		Help:    "Latency of individual pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)

// RecordOutcome counts one finished request.
func RecordOutcome(outcome string) {
	requestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long a pipeline stage took.
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
