package objective

import "github.com/fireflyopt/queuenet-optimizer/pkg/core"

// Wire identifiers of the objective kinds, as accepted from configuration
// surfaces.
const (
	KindMeanResponseTime       = "mean_response_time"
	KindMeanQueueLength        = "mean_queue_length"
	KindMaxQueueLength         = "max_queue_length"
	KindUtilizationVariance    = "utilization_variance"
	KindThroughput             = "throughput"
	KindResponseTimePercentile = "response_time_percentile"
	KindProfit                 = "profit"
	KindWeighted               = "weighted_objective"
	KindGenericWeighted        = "generic_weighted_objective"
)

// Default parameter values, applied by Parse when the corresponding Params
// field is zero.
const (
	DefaultPercentile          = 95.0
	DefaultRevenueRate         = 10.0
	DefaultServerUnitCost      = 1.0
	DefaultCustomerHoldingCost = 0.5
	DefaultResponseTimeWeight  = 0.33
	DefaultThroughputWeight    = 0.34
	DefaultQueueLengthWeight   = 0.33
)

// Params carries the kind-specific objective parameters as they arrive from
// a configuration surface. Fields irrelevant to the selected kind are
// ignored; zero fields fall back to defaults.
type Params struct {
	// Percentile for response_time_percentile, in (0, 100).
	Percentile float64 `json:"percentile" yaml:"percentile"`

	// Profit parameters.
	RevenueRate         float64 `json:"profitR" yaml:"profitR"`
	ServerUnitCost      float64 `json:"profitCs" yaml:"profitCs"`
	CustomerHoldingCost float64 `json:"profitCn" yaml:"profitCn"`

	// Weights for weighted_objective.
	W1 float64 `json:"weightW1" yaml:"weightW1"`
	W2 float64 `json:"weightW2" yaml:"weightW2"`
	W3 float64 `json:"weightW3" yaml:"weightW3"`

	// Criteria for generic_weighted_objective.
	Criteria map[string]float64 `json:"criteria" yaml:"criteria"`
}

// Parse maps a wire identifier plus its parameters to an Objective. Unknown
// identifiers yield an UnknownObjectiveError, unknown generic criteria a
// ConfigurationError.
func Parse(kind string, p Params) (Objective, error) {
	switch kind {
	case KindMeanResponseTime:
		return MeanResponseTime{}, nil
	case KindMeanQueueLength:
		return MeanQueueLength{}, nil
	case KindMaxQueueLength:
		return MaxQueueLength{}, nil
	case KindUtilizationVariance:
		return UtilizationVariance{}, nil
	case KindThroughput:
		return Throughput{}, nil
	case KindResponseTimePercentile:
		pct := p.Percentile
		if pct == 0 {
			pct = DefaultPercentile
		}
		if pct <= 0 || pct >= 100 {
			return nil, core.NewConfigurationError("percentile must be in (0, 100), got %g", pct)
		}
		return ResponseTimePercentile{Percentile: pct}, nil
	case KindProfit:
		o := Profit{
			RevenueRate:         p.RevenueRate,
			ServerUnitCost:      p.ServerUnitCost,
			CustomerHoldingCost: p.CustomerHoldingCost,
		}
		if o.RevenueRate == 0 {
			o.RevenueRate = DefaultRevenueRate
		}
		if o.ServerUnitCost == 0 {
			o.ServerUnitCost = DefaultServerUnitCost
		}
		if o.CustomerHoldingCost == 0 {
			o.CustomerHoldingCost = DefaultCustomerHoldingCost
		}
		return o, nil
	case KindWeighted:
		o := Weighted{
			ResponseTimeWeight: p.W1,
			ThroughputWeight:   p.W2,
			QueueLengthWeight:  p.W3,
		}
		if o.ResponseTimeWeight == 0 && o.ThroughputWeight == 0 && o.QueueLengthWeight == 0 {
			o.ResponseTimeWeight = DefaultResponseTimeWeight
			o.ThroughputWeight = DefaultThroughputWeight
			o.QueueLengthWeight = DefaultQueueLengthWeight
		}
		return o, nil
	case KindGenericWeighted:
		if len(p.Criteria) == 0 {
			return nil, core.NewConfigurationError("generic weighted objective needs at least one criterion")
		}
		weights := make(map[string]float64, len(p.Criteria))
		for name, w := range p.Criteria {
			if !validCriterion(name) {
				return nil, core.NewConfigurationError("unknown criterion %q", name)
			}
			weights[name] = w
		}
		return GenericWeighted{Weights: weights}, nil
	default:
		return nil, &core.UnknownObjectiveError{Kind: kind}
	}
}
