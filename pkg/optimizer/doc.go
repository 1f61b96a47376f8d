// Package optimizer coordinates the full optimization flow: solve the
// baseline network, search the server allocation space with the firefly
// swarm, solve the best configuration found, and report the improvement
// with a cost breakdown.
//
// The baseline configuration is seeded into the search population, so the
// optimized result is never worse than the baseline.
package optimizer
