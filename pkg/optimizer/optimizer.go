package optimizer

import (
	"math"
	"time"

	"github.com/go-logr/logr"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/internal/telemetry"
	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
	"github.com/fireflyopt/queuenet-optimizer/pkg/objective"
	"github.com/fireflyopt/queuenet-optimizer/pkg/solver"
	"github.com/fireflyopt/queuenet-optimizer/pkg/swarm"
)

// Optimizer runs the baseline-search-compare flow. Construct with New; an
// Optimizer is reusable across runs but not safe for concurrent use when
// telemetry is attached.
type Optimizer struct {
	solver  *solver.Solver
	logger  logr.Logger
	metrics *telemetry.Metrics
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger passed through to the solver and the swarm.
func WithLogger(l logr.Logger) Option {
	return func(o *Optimizer) { o.logger = l }
}

// WithTelemetry wires Prometheus instrumentation into the run.
func WithTelemetry(m *telemetry.Metrics) Option {
	return func(o *Optimizer) { o.metrics = m }
}

// New builds an Optimizer.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{logger: logging.Log()}
	for _, opt := range opts {
		opt(o)
	}
	o.solver = solver.New(solver.WithLogger(o.logger))
	return o
}

// Optimize searches the per-station server allocation space of net for the
// configuration that best serves obj, within bounds. The baseline
// configuration is seeded into the search, so the returned result never
// scores worse than the baseline.
func (o *Optimizer) Optimize(
	net *core.Network,
	obj objective.Objective,
	bounds swarm.Bounds,
	params swarm.Params,
) (*Result, error) {
	start := time.Now()

	baseline, err := o.snapshot(net, obj)
	if err != nil {
		return nil, err
	}
	o.logger.V(logging.INFO).Info("baseline evaluated",
		"objective", obj.Kind(),
		"score", baseline.Score,
		"servers", net.ServerCounts())

	oracle := func(vector []int) (float64, error) {
		candidate, err := net.WithServers(vector)
		if err != nil {
			return 0, err
		}
		m, err := o.solve(candidate)
		if err != nil {
			return 0, err
		}
		return objective.Fitness(obj, m), nil
	}

	search, err := swarm.New(params, bounds, net.NumStations(), oracle,
		swarm.WithLogger(o.logger),
		swarm.WithTelemetry(o.metrics),
		swarm.WithSeedCandidate(net.ServerCounts()))
	if err != nil {
		return nil, err
	}
	state, err := search.Run()
	if err != nil {
		return nil, err
	}

	optimizedNet, err := net.WithServers(state.BestEver.Vector)
	if err != nil {
		return nil, err
	}
	optimized, err := o.snapshot(optimizedNet, obj)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Objective:   obj.Kind(),
		Baseline:    baseline,
		Optimized:   optimized,
		Improvement: improvement(obj, baseline.Score, optimized.Score),
		History:     state.History,
		Evaluations: state.Evaluations,
	}
	result.Cost = costBreakdown(obj, result)

	if o.metrics != nil {
		o.metrics.OptimizationDuration.Observe(time.Since(start).Seconds())
	}
	o.logger.V(logging.INFO).Info("optimization finished",
		"objective", obj.Kind(),
		"baselineScore", baseline.Score,
		"optimizedScore", optimized.Score,
		"improvementPercent", result.Improvement.Percent,
		"servers", optimizedNet.ServerCounts())

	return result, nil
}

func (o *Optimizer) solve(net *core.Network) (*core.PerformanceMetrics, error) {
	if o.metrics != nil {
		o.metrics.SolvesTotal.Inc()
	}
	return o.solver.Solve(net)
}

func (o *Optimizer) snapshot(net *core.Network, obj objective.Objective) (Snapshot, error) {
	m, err := o.solve(net)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Network: net.Config(),
		Metrics: m,
		Score:   obj.Value(m),
	}, nil
}

// improvement adjusts the score delta for objective direction so a positive
// value always means the optimized configuration is better.
func improvement(obj objective.Objective, baseline, optimized float64) Improvement {
	abs := baseline - optimized
	if obj.Direction() == objective.Maximize {
		abs = optimized - baseline
	}
	imp := Improvement{Absolute: abs}
	if baseline != 0 {
		imp.Percent = abs / math.Abs(baseline) * 100
	}
	return imp
}

// costBreakdown builds the resource or economic summary for objectives that
// carry one; nil otherwise.
func costBreakdown(obj objective.Objective, r *Result) *CostBreakdown {
	baseServers := r.Baseline.Metrics.TotalServers
	optServers := r.Optimized.Metrics.TotalServers

	switch obj := obj.(type) {
	case objective.MeanQueueLength, objective.MaxQueueLength, objective.ResponseTimePercentile:
		return &CostBreakdown{
			Type:             CostAddedServers,
			Description:      "servers added by the optimized configuration",
			BaselineServers:  baseServers,
			OptimizedServers: optServers,
			AddedServers:     optServers - baseServers,
		}
	case objective.Profit:
		breakdown := &CostBreakdown{
			Type:               CostEconomics,
			Description:        "revenue and cost decomposition of both configurations",
			BaselineServers:    baseServers,
			OptimizedServers:   optServers,
			AddedServers:       optServers - baseServers,
			BaselineEconomics:  economics(obj, r.Baseline.Metrics),
			OptimizedEconomics: economics(obj, r.Optimized.Metrics),
		}
		investment := obj.ServerUnitCost *
			(r.Optimized.Metrics.TotalServiceCapacity() - r.Baseline.Metrics.TotalServiceCapacity())
		if investment > 0 {
			breakdown.Investment = investment
			breakdown.ROIPercent = r.Improvement.Absolute / investment * 100
		}
		return breakdown
	default:
		return nil
	}
}

func economics(obj objective.Profit, m *core.PerformanceMetrics) *Economics {
	e := &Economics{
		Revenue:     obj.RevenueRate * m.Throughput,
		ServerCost:  obj.ServerUnitCost * m.TotalServiceCapacity(),
		HoldingCost: obj.CustomerHoldingCost * float64(m.Customers),
	}
	e.Profit = e.Revenue - e.ServerCost - e.HoldingCost
	return e
}
