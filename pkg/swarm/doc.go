// Package swarm implements a firefly metaheuristic over integer decision
// vectors.
//
// Candidates ("fireflies") move toward brighter (lower-fitness) neighbors
// with distance-decaying attraction plus a random perturbation, then are
// rounded and clipped back into bounds. The fitness oracle is a black box;
// the swarm always minimizes.
//
// A Swarm owns its random source, seeded from Params.Seed, so a fixed seed
// reproduces a run exactly. Candidates are never mutated in place: every
// movement produces a fresh Candidate and every iteration a fresh
// population.
package swarm
