package optimizer

import "github.com/fireflyopt/queuenet-optimizer/pkg/core"

// Snapshot captures one evaluated configuration: the network, its solved
// metrics and the raw objective score.
type Snapshot struct {
	Network core.NetworkConfig       `json:"network" yaml:"network"`
	Metrics *core.PerformanceMetrics `json:"metrics" yaml:"metrics"`
	Score   float64                  `json:"score" yaml:"score"`
}

// Improvement quantifies how much the optimized configuration beats the
// baseline, adjusted for objective direction so positive is always better.
type Improvement struct {
	Absolute float64 `json:"absolute" yaml:"absolute"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// Cost breakdown types.
const (
	CostAddedServers = "added_servers"
	CostEconomics    = "profit_economics"
)

// Economics decomposes the profit objective for one configuration.
type Economics struct {
	Revenue     float64 `json:"revenue" yaml:"revenue"`
	ServerCost  float64 `json:"serverCost" yaml:"serverCost"`
	HoldingCost float64 `json:"holdingCost" yaml:"holdingCost"`
	Profit      float64 `json:"profit" yaml:"profit"`
}

// CostBreakdown explains what the optimized configuration costs relative to
// the baseline. Present only for objectives with a resource or economic
// interpretation.
type CostBreakdown struct {
	Type             string `json:"type" yaml:"type"`
	Description      string `json:"description" yaml:"description"`
	BaselineServers  int    `json:"baselineServers" yaml:"baselineServers"`
	OptimizedServers int    `json:"optimizedServers" yaml:"optimizedServers"`
	AddedServers     int    `json:"addedServers" yaml:"addedServers"`

	// Economics is populated for the profit objective only.
	BaselineEconomics  *Economics `json:"baselineEconomics,omitempty" yaml:"baselineEconomics,omitempty"`
	OptimizedEconomics *Economics `json:"optimizedEconomics,omitempty" yaml:"optimizedEconomics,omitempty"`

	// Investment is the incremental server capacity cost of the optimized
	// configuration; ROIPercent relates the profit gain to it. Both are
	// zero when no capacity was added.
	Investment float64 `json:"investment,omitempty" yaml:"investment,omitempty"`
	ROIPercent float64 `json:"roiPercent,omitempty" yaml:"roiPercent,omitempty"`
}

// Result is the complete outcome of one optimization run.
type Result struct {
	Objective   string         `json:"objective" yaml:"objective"`
	Baseline    Snapshot       `json:"baseline" yaml:"baseline"`
	Optimized   Snapshot       `json:"optimized" yaml:"optimized"`
	Improvement Improvement    `json:"improvement" yaml:"improvement"`
	Cost        *CostBreakdown `json:"cost,omitempty" yaml:"cost,omitempty"`

	// History is the best fitness through each search iteration, for
	// convergence reporting.
	History []float64 `json:"history" yaml:"history"`
	// Evaluations counts fitness oracle calls during the search.
	Evaluations int `json:"evaluations" yaml:"evaluations"`
}
