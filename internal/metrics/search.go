package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// QueriesIssuedTotal counts queries issued by the debounce orchestrator.
	QueriesIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facetdex",
			Name:      "search_queries_issued_total",
			Help:      "Total number of search queries issued after debounce",
		},
	)

	// StaleDroppedTotal counts pipeline results discarded because a newer
	// query superseded them before completion.
	StaleDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facetdex",
			Name:      "search_stale_dropped_total",
			Help:      "Total number of stale search results discarded",
		},
	)

	// DebounceCancelledTotal counts pending timers cancelled by further input.
	DebounceCancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facetdex",
			Name:      "search_debounce_cancelled_total",
			Help:      "Total number of debounce timers cancelled by newer input",
		},
	)

	// PipelineDuration observes end-to-end pipeline execution time.
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "facetdex",
			Name:      "search_pipeline_duration_seconds",
			Help:      "Search pipeline execution time in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
		},
	)

	// PipelineUnavailableTotal counts pipeline runs that failed or timed out.
	PipelineUnavailableTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facetdex",
			Name:      "search_pipeline_unavailable_total",
			Help:      "Total number of pipeline runs that ended in the unavailable state",
		},
	)
)

// RegisterSearchMetrics registers search pipeline metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		QueriesIssuedTotal,
		StaleDroppedTotal,
		DebounceCancelledTotal,
		PipelineDuration,
		PipelineUnavailableTotal,
	)
}
