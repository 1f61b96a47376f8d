package objective

import (
	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
)

// Direction says whether an objective's raw value should be driven down
// or up.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Objective scores a solved network. Implementations are the fixed set of
// kinds in this package; the interface is sealed so a switch over the
// concrete types is exhaustive.
type Objective interface {
	// Kind returns the wire identifier of the objective.
	Kind() string
	// Direction returns whether Value should be minimized or maximized.
	Direction() Direction
	// Value returns the raw, user-facing score.
	Value(m *core.PerformanceMetrics) float64

	sealed()
}

// Fitness returns the score in the search engine's minimization convention:
// the raw value for minimization objectives, its negation for maximization
// objectives.
func Fitness(o Objective, m *core.PerformanceMetrics) float64 {
	v := o.Value(m)
	if o.Direction() == Maximize {
		return -v
	}
	return v
}

// MeanResponseTime minimizes the mean time a customer spends per network
// cycle.
type MeanResponseTime struct{}

func (MeanResponseTime) Kind() string         { return KindMeanResponseTime }
func (MeanResponseTime) Direction() Direction { return Minimize }
func (MeanResponseTime) Value(m *core.PerformanceMetrics) float64 {
	return m.MeanResponseTime
}
func (MeanResponseTime) sealed() {}

// MeanQueueLength minimizes the mean number of customers waiting or in
// service across all stations.
type MeanQueueLength struct{}

func (MeanQueueLength) Kind() string         { return KindMeanQueueLength }
func (MeanQueueLength) Direction() Direction { return Minimize }
func (MeanQueueLength) Value(m *core.PerformanceMetrics) float64 {
	return m.MeanQueueLength
}
func (MeanQueueLength) sealed() {}

// MaxQueueLength minimizes the queue at the most congested station.
type MaxQueueLength struct{}

func (MaxQueueLength) Kind() string         { return KindMaxQueueLength }
func (MaxQueueLength) Direction() Direction { return Minimize }
func (MaxQueueLength) Value(m *core.PerformanceMetrics) float64 {
	return m.MaxQueueLength
}
func (MaxQueueLength) sealed() {}

// UtilizationVariance minimizes imbalance of load across stations.
type UtilizationVariance struct{}

func (UtilizationVariance) Kind() string         { return KindUtilizationVariance }
func (UtilizationVariance) Direction() Direction { return Minimize }
func (UtilizationVariance) Value(m *core.PerformanceMetrics) float64 {
	return m.UtilizationVariance
}
func (UtilizationVariance) sealed() {}

// Throughput maximizes the system completion rate.
type Throughput struct{}

func (Throughput) Kind() string         { return KindThroughput }
func (Throughput) Direction() Direction { return Maximize }
func (Throughput) Value(m *core.PerformanceMetrics) float64 {
	return m.Throughput
}
func (Throughput) sealed() {}

// ResponseTimePercentile minimizes an approximated tail percentile of the
// response time. The percentile is derived from the mean under an
// exponential-tail assumption, not from the true distribution.
type ResponseTimePercentile struct {
	// Percentile in (0, 100), e.g. 95.
	Percentile float64
}

func (ResponseTimePercentile) Kind() string         { return KindResponseTimePercentile }
func (ResponseTimePercentile) Direction() Direction { return Minimize }
func (o ResponseTimePercentile) Value(m *core.PerformanceMetrics) float64 {
	return m.ResponseTimePercentile(o.Percentile)
}
func (ResponseTimePercentile) sealed() {}

// Profit maximizes net operating profit: throughput revenue minus server
// capacity cost minus the holding cost of the circulating customers.
type Profit struct {
	// RevenueRate is the revenue earned per completed job.
	RevenueRate float64
	// ServerUnitCost is the cost per unit of deployed service capacity
	// (rate times server count).
	ServerUnitCost float64
	// CustomerHoldingCost is the cost per circulating customer.
	CustomerHoldingCost float64
}

func (Profit) Kind() string         { return KindProfit }
func (Profit) Direction() Direction { return Maximize }
func (o Profit) Value(m *core.PerformanceMetrics) float64 {
	return o.RevenueRate*m.Throughput -
		o.ServerUnitCost*m.TotalServiceCapacity() -
		o.CustomerHoldingCost*float64(m.Customers)
}
func (Profit) sealed() {}

// Weighted maximizes a fixed three-way tradeoff between response time,
// throughput and queue length: w1*(-R) + w2*X + w3*(-L). Weights are used as
// given; they conventionally sum to 1 but this is not enforced.
type Weighted struct {
	ResponseTimeWeight float64 // w1
	ThroughputWeight   float64 // w2
	QueueLengthWeight  float64 // w3
}

func (Weighted) Kind() string         { return KindWeighted }
func (Weighted) Direction() Direction { return Maximize }
func (o Weighted) Value(m *core.PerformanceMetrics) float64 {
	return o.ResponseTimeWeight*(-m.MeanResponseTime) +
		o.ThroughputWeight*m.Throughput +
		o.QueueLengthWeight*(-m.MeanQueueLength)
}
func (Weighted) sealed() {}

// Criterion identifiers accepted by GenericWeighted.
const (
	CriterionResponseTime        = "response_time"
	CriterionQueueLength         = "queue_length"
	CriterionUtilizationVariance = "utilization_variance"
	CriterionMaxQueue            = "max_queue"
	CriterionCost                = "cost"
)

// GenericWeighted minimizes a weighted sum over a configurable criterion
// set. Criterion values are used raw, weights as given; the cost criterion
// charges one unit per deployed server.
type GenericWeighted struct {
	// Weights maps criterion identifiers to their weights. Unknown
	// identifiers are rejected at Parse time.
	Weights map[string]float64
}

func (GenericWeighted) Kind() string         { return KindGenericWeighted }
func (GenericWeighted) Direction() Direction { return Minimize }
func (o GenericWeighted) Value(m *core.PerformanceMetrics) float64 {
	// Fixed accumulation order keeps the value bit-identical across runs.
	total := 0.0
	if w, ok := o.Weights[CriterionResponseTime]; ok {
		total += w * m.MeanResponseTime
	}
	if w, ok := o.Weights[CriterionQueueLength]; ok {
		total += w * m.MeanQueueLength
	}
	if w, ok := o.Weights[CriterionUtilizationVariance]; ok {
		total += w * m.UtilizationVariance
	}
	if w, ok := o.Weights[CriterionMaxQueue]; ok {
		total += w * m.MaxQueueLength
	}
	if w, ok := o.Weights[CriterionCost]; ok {
		total += w * float64(m.TotalServers)
	}
	return total
}
func (GenericWeighted) sealed() {}

func validCriterion(name string) bool {
	switch name {
	case CriterionResponseTime, CriterionQueueLength,
		CriterionUtilizationVariance, CriterionMaxQueue, CriterionCost:
		return true
	}
	return false
}
