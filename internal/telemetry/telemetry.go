// Package telemetry exposes Prometheus instrumentation for the optimizer:
// solver invocations, candidate evaluations, optimization run durations and
// the best fitness seen by the search. Metrics are registered against a
// caller-supplied registerer so embedding applications keep control of
// their registry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "queuenet_optimizer"

// Metrics bundles the instruments updated by the orchestrator and the swarm.
type Metrics struct {
	// SolvesTotal counts MVA solver invocations.
	SolvesTotal prometheus.Counter

	// EvaluationsTotal counts candidate fitness evaluations performed by
	// the swarm.
	EvaluationsTotal prometheus.Counter

	// CandidateFailures counts candidate evaluations that failed and were
	// assigned worst fitness.
	CandidateFailures prometheus.Counter

	// OptimizationDuration observes wall-clock duration of full
	// optimization runs, in seconds.
	OptimizationDuration prometheus.Histogram

	// BestFitness tracks the best (lowest) fitness found so far in the
	// current run.
	BestFitness prometheus.Gauge
}

// New creates the metric set, registering it with reg. A nil reg leaves the
// metrics unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SolvesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of MVA solver invocations.",
		}),
		EvaluationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of candidate fitness evaluations.",
		}),
		CandidateFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidate_failures_total",
			Help:      "Number of candidate evaluations that failed and received worst fitness.",
		}),
		OptimizationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimization_duration_seconds",
			Help:      "Wall-clock duration of optimization runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		BestFitness: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Best (lowest) fitness found so far in the current run.",
		}),
	}
}
