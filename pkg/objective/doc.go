// Package objective turns raw network performance metrics into the scalar
// scores the search engine optimizes.
//
// Each objective kind is a concrete type implementing Objective. The search
// engine always minimizes, so Fitness negates the value of maximization
// objectives; Value is the raw, user-facing number.
//
// Objectives are selected by their wire identifier:
//
//	obj, err := objective.Parse("profit", objective.Params{RevenueRate: 12})
//	if err != nil { ... }
//	score := objective.Fitness(obj, metrics)
//
// Catalog lists every kind with a human-readable description, for
// configuration surfaces.
package objective
