package sim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects resolution metrics for production monitoring.
//
// Metrics exposed (namespace "quizgraph"):
//
//   - passes_total (counter, labels: status): resolution passes by outcome.
//   - pass_duration_ms (histogram): end-to-end pass duration.
//   - nodes_considered (histogram): graph size entering a pass, before any
//     pruning.
//   - filters_merged_total (counter, labels: definition_id): multi-member
//     merge groups resolved, per filter kind.
//   - fallback_selections_total (counter): forced single-node fallbacks where
//     every group member failed its execution roll.
//
// A nil *PrometheusMetrics is valid and records nothing, so the engine never
// branches on whether metrics were configured.
type PrometheusMetrics struct {
	passes             *prometheus.CounterVec
	passDuration       prometheus.Histogram
	nodesConsidered    prometheus.Histogram
	filtersMerged      *prometheus.CounterVec
	fallbackSelections prometheus.Counter
}

// NewPrometheusMetrics creates and registers the resolution metrics with the
// given registry (the default registerer when nil).
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	metrics := sim.NewPrometheusMetrics(registry)
//	engine, err := sim.New(reg, sim.WithMetrics(metrics))
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizgraph",
			Name:      "passes_total",
			Help:      "Resolution passes by outcome",
		}, []string{"status"}), // status: success, error
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quizgraph",
			Name:      "pass_duration_ms",
			Help:      "End-to-end resolution pass duration in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
		}),
		nodesConsidered: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quizgraph",
			Name:      "nodes_considered",
			Help:      "Number of graph nodes entering a pass",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		filtersMerged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizgraph",
			Name:      "filters_merged_total",
			Help:      "Multi-member filter merge groups resolved, per filter kind",
		}, []string{"definition_id"}),
		fallbackSelections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "quizgraph",
			Name:      "fallback_selections_total",
			Help:      "Forced single-node selections where every group member failed its execution roll",
		}),
	}
}

// RecordPass records one completed pass with its outcome and duration.
func (pm *PrometheusMetrics) RecordPass(status string, duration time.Duration, nodeCount int) {
	if pm == nil {
		return
	}
	pm.passes.WithLabelValues(status).Inc()
	pm.passDuration.Observe(float64(duration.Microseconds()) / 1000)
	pm.nodesConsidered.Observe(float64(nodeCount))
}

// RecordMerge records one multi-member merge group for a filter kind.
func (pm *PrometheusMetrics) RecordMerge(definitionID string) {
	if pm == nil {
		return
	}
	pm.filtersMerged.WithLabelValues(definitionID).Inc()
}

// RecordFallbackSelection records one forced single-node fallback.
func (pm *PrometheusMetrics) RecordFallbackSelection() {
	if pm == nil {
		return
	}
	pm.fallbackSelections.Inc()
}
