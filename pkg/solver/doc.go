// Package solver computes the exact steady-state performance of closed
// queueing networks using multi-server mean value analysis.
//
// The solver recurses over population sizes n = 1..N, carrying per-station
// marginal queue length state for multi-server stations, and produces the
// full set of performance measures for the target population:
//
//	metrics, err := solver.Solve(network)
//	if err != nil { ... }
//	fmt.Println(metrics.Throughput, metrics.MeanResponseTime)
//
// The analysis is exact for product-form networks with exponential service
// times. It is deterministic: the same network always yields bitwise
// identical metrics.
package solver
