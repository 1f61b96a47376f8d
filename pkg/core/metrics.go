package core

import "math"

// StationMetrics holds the steady-state performance measures of one station.
type StationMetrics struct {
	Name string `json:"name" yaml:"name"`

	// ServiceRate, Servers and VisitWeight echo the station configuration
	// the metrics were computed from, so a report row is self-contained.
	ServiceRate float64 `json:"serviceRate" yaml:"serviceRate"`
	Servers     int     `json:"servers" yaml:"servers"`
	VisitWeight float64 `json:"visitWeight" yaml:"visitWeight"`

	// Utilization is the fraction of busy server capacity, X * v * s / m.
	Utilization float64 `json:"utilization" yaml:"utilization"`

	// QueueLength is the mean number of customers at the station,
	// waiting or in service.
	QueueLength float64 `json:"queueLength" yaml:"queueLength"`

	// ResponseTime is the mean time a customer spends per visit.
	ResponseTime float64 `json:"responseTime" yaml:"responseTime"`

	// Throughput is the station's completion rate, X * v.
	Throughput float64 `json:"throughput" yaml:"throughput"`
}

// PerformanceMetrics holds the steady-state solution of a closed queueing
// network for its full customer population.
type PerformanceMetrics struct {
	// Customers is the population the network was solved for.
	Customers int `json:"customers" yaml:"customers"`

	// TotalServers is the total server count across all stations.
	TotalServers int `json:"totalServers" yaml:"totalServers"`

	// Throughput is the system throughput X(N).
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// MeanResponseTime is the mean time of one full network cycle,
	// N/X by Little's law.
	MeanResponseTime float64 `json:"meanResponseTime" yaml:"meanResponseTime"`

	// MeanQueueLength is the mean number of customers waiting or in
	// service across all stations combined. For a closed network this
	// always equals the customer population.
	MeanQueueLength float64 `json:"meanQueueLength" yaml:"meanQueueLength"`

	// MaxQueueLength is the largest per-station mean queue length.
	MaxQueueLength float64 `json:"maxQueueLength" yaml:"maxQueueLength"`

	// UtilizationVariance is the population variance of the per-station
	// utilizations, a balance measure across the network.
	UtilizationVariance float64 `json:"utilizationVariance" yaml:"utilizationVariance"`

	// Stations holds the per-station measures, in network order.
	Stations []StationMetrics `json:"stations" yaml:"stations"`
}

// ResponseTimePercentile approximates the p-th percentile of the response
// time distribution assuming an exponential tail:
//
//	R_p = -mean * ln(1 - p/100)
//
// This is an approximation; exact percentiles would require the full
// response time distribution, which mean value analysis does not produce.
// p must lie in (0, 100).
func (m *PerformanceMetrics) ResponseTimePercentile(p float64) float64 {
	if p <= 0 || p >= 100 {
		return math.NaN()
	}
	return -m.MeanResponseTime * math.Log(1-p/100)
}

// TotalServiceCapacity returns the aggregate service capacity of the
// network, the sum of serviceRate * servers over all stations.
func (m *PerformanceMetrics) TotalServiceCapacity() float64 {
	total := 0.0
	for _, s := range m.Stations {
		total += s.ServiceRate * float64(s.Servers)
	}
	return total
}

// BottleneckStation returns the index of the station with the highest
// utilization, or -1 for an empty network.
func (m *PerformanceMetrics) BottleneckStation() int {
	best, bestU := -1, -1.0
	for i, s := range m.Stations {
		if s.Utilization > bestU {
			best, bestU = i, s.Utilization
		}
	}
	return best
}
