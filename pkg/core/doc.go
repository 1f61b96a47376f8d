// Package core provides the fundamental data structures of the queueing
// network optimizer.
//
// The package contains the domain models shared by the solver, the objective
// framework and the search engine:
//
//   - Station: a service station with a rate, a server count and a visit weight
//   - Network: an immutable closed queueing network (fixed customer population)
//   - PerformanceMetrics: per-station and aggregate steady-state measures
//   - ConfigurationError / UnknownObjectiveError: the error surface of the core
//
// Networks are immutable once built. A modified configuration, such as a
// search candidate with different server counts, is always a freshly
// constructed Network obtained through WithServers, never a mutation of an
// existing one, so repeated or concurrent solves never alias state.
//
// Example usage:
//
//	net, err := core.NewNetwork(20, []core.Station{
//	    {Name: "cpu", ServiceRate: 5, Servers: 2},
//	    {Name: "disk", ServiceRate: 3, Servers: 2},
//	    {Name: "net", ServiceRate: 4, Servers: 2},
//	})
//	if err != nil {
//	    return err
//	}
//	candidate, err := net.WithServers([]int{4, 3, 2})
//
// The core package is designed to be:
//   - Immutable (value semantics, no shared mutable state)
//   - Independent of the solver and search packages (pure domain data)
//   - Strict about invariants at construction time
package core
