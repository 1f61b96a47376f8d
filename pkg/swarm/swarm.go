package swarm

import (
	"math"
	"math/rand"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/internal/telemetry"
	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
)

// worstFitness marks a candidate whose evaluation failed.
const worstFitness = math.MaxFloat64

// Params controls the firefly search.
type Params struct {
	// NFireflies is the population size, in [10, 100].
	NFireflies int `json:"nFireflies" yaml:"nFireflies"`
	// MaxIterations is the fixed iteration budget, in [10, 500].
	MaxIterations int `json:"maxIterations" yaml:"maxIterations"`
	// Alpha scales the random perturbation, in [0, 1].
	Alpha float64 `json:"alpha" yaml:"alpha"`
	// Beta0 is the attraction at zero distance, in [0, 2].
	Beta0 float64 `json:"beta0" yaml:"beta0"`
	// Gamma is the light absorption coefficient, in [0, 5]. Higher values
	// make attraction decay faster with distance.
	Gamma float64 `json:"gamma" yaml:"gamma"`
	// Seed initializes the swarm's random source. The same seed with the
	// same inputs reproduces a run exactly.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultParams returns the standard search parameters.
func DefaultParams() Params {
	return Params{
		NFireflies:    25,
		MaxIterations: 100,
		Alpha:         0.5,
		Beta0:         1.0,
		Gamma:         1.0,
	}
}

// Validate checks that every parameter lies in its accepted range.
func (p Params) Validate() error {
	if p.NFireflies < 10 || p.NFireflies > 100 {
		return core.NewConfigurationError("nFireflies must be in [10, 100], got %d", p.NFireflies)
	}
	if p.MaxIterations < 10 || p.MaxIterations > 500 {
		return core.NewConfigurationError("maxIterations must be in [10, 500], got %d", p.MaxIterations)
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return core.NewConfigurationError("alpha must be in [0, 1], got %g", p.Alpha)
	}
	if p.Beta0 < 0 || p.Beta0 > 2 {
		return core.NewConfigurationError("beta0 must be in [0, 2], got %g", p.Beta0)
	}
	if p.Gamma < 0 || p.Gamma > 5 {
		return core.NewConfigurationError("gamma must be in [0, 5], got %g", p.Gamma)
	}
	return nil
}

// Bounds is the shared per-dimension range of the decision variables.
type Bounds struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Validate checks the bound invariants.
func (b Bounds) Validate() error {
	if b.Min < 1 {
		return core.NewConfigurationError("lower bound must be >= 1, got %d", b.Min)
	}
	if b.Max < b.Min {
		return core.NewConfigurationError("upper bound %d is below lower bound %d", b.Max, b.Min)
	}
	return nil
}

func (b Bounds) clip(x float64) int {
	v := int(math.Round(x))
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Oracle scores a decision vector; lower is better. An error marks the
// candidate as unusable without aborting the search.
type Oracle func(vector []int) (float64, error)

// Candidate is one swarm member: an integer decision vector and its fitness.
type Candidate struct {
	Vector  []int   `json:"vector" yaml:"vector"`
	Fitness float64 `json:"fitness" yaml:"fitness"`
}

func (c Candidate) clone() Candidate {
	v := make([]int, len(c.Vector))
	copy(v, c.Vector)
	return Candidate{Vector: v, Fitness: c.Fitness}
}

// State is the terminal state of a search run.
type State struct {
	// Population is the final generation.
	Population []Candidate `json:"population" yaml:"population"`
	// BestEver is the best candidate found across all generations.
	BestEver Candidate `json:"bestEver" yaml:"bestEver"`
	// History holds the best fitness found through each iteration. It is
	// non-increasing.
	History []float64 `json:"history" yaml:"history"`
	// Evaluations counts oracle calls, failed ones included.
	Evaluations int `json:"evaluations" yaml:"evaluations"`
}

// Swarm runs the firefly search. Construct with New; a Swarm is good for a
// single Run and is not safe for concurrent use.
type Swarm struct {
	params Params
	bounds Bounds
	dims   int
	oracle Oracle
	rng    *rand.Rand

	logger  logr.Logger
	metrics *telemetry.Metrics
	seed    []int

	evaluations int
}

// Option configures a Swarm.
type Option func(*Swarm)

// WithLogger sets the logger for search progress output.
func WithLogger(l logr.Logger) Option {
	return func(s *Swarm) { s.logger = l }
}

// WithTelemetry wires Prometheus instrumentation into the search.
func WithTelemetry(m *telemetry.Metrics) Option {
	return func(s *Swarm) { s.metrics = m }
}

// WithSeedCandidate injects a known-good vector as the first member of the
// initial population, so the search result can never be worse than it.
func WithSeedCandidate(vector []int) Option {
	return func(s *Swarm) {
		s.seed = make([]int, len(vector))
		copy(s.seed, vector)
	}
}

// New validates the inputs and builds a Swarm over dims decision variables.
func New(params Params, bounds Bounds, dims int, oracle Oracle, opts ...Option) (*Swarm, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if dims < 1 {
		return nil, core.NewConfigurationError("decision space must have at least one dimension, got %d", dims)
	}
	if oracle == nil {
		return nil, core.NewConfigurationError("fitness oracle is required")
	}

	s := &Swarm{
		params: params,
		bounds: bounds,
		dims:   dims,
		oracle: oracle,
		rng:    rand.New(rand.NewSource(params.Seed)),
		logger: logging.Log(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed != nil && len(s.seed) != dims {
		return nil, core.NewConfigurationError("seed candidate has %d entries, expected %d", len(s.seed), dims)
	}
	return s, nil
}

// Run executes the full iteration budget and returns the terminal state.
func (s *Swarm) Run() (*State, error) {
	population := s.initialize()

	best := bestOf(population).clone()
	s.logger.V(logging.DEBUG).Info("initial population evaluated",
		"fireflies", len(population), "bestFitness", best.Fitness)

	history := make([]float64, 0, s.params.MaxIterations)
	for iter := 0; iter < s.params.MaxIterations; iter++ {
		population = s.step(population)

		if challenger := bestOf(population); challenger.Fitness < best.Fitness {
			best = challenger.clone()
		}
		history = append(history, best.Fitness)

		if s.metrics != nil {
			s.metrics.BestFitness.Set(best.Fitness)
		}
		if (iter+1)%10 == 0 {
			s.logger.V(logging.DEBUG).Info("search progress",
				"iteration", iter+1, "bestFitness", best.Fitness)
		}
	}

	return &State{
		Population:  population,
		BestEver:    best,
		History:     history,
		Evaluations: s.evaluations,
	}, nil
}

// initialize draws the starting population uniformly within bounds, with an
// optional seed candidate in slot 0.
func (s *Swarm) initialize() []Candidate {
	population := make([]Candidate, s.params.NFireflies)
	for i := range population {
		vector := make([]int, s.dims)
		if i == 0 && s.seed != nil {
			for d, v := range s.seed {
				vector[d] = s.bounds.clip(float64(v))
			}
		} else {
			span := s.bounds.Max - s.bounds.Min + 1
			for d := range vector {
				vector[d] = s.bounds.Min + s.rng.Intn(span)
			}
		}
		population[i] = Candidate{Vector: vector, Fitness: s.evaluate(vector)}
	}
	return population
}

// step produces the next generation. Every candidate accumulates attraction
// toward each strictly brighter member of the current generation plus a
// random perturbation, is rounded and clipped once, and is re-evaluated.
// A candidate with no brighter neighbor is carried over verbatim, which
// keeps the generation's best unperturbed.
func (s *Swarm) step(population []Candidate) []Candidate {
	next := make([]Candidate, len(population))

	for i, from := range population {
		position := toFloats(from.Vector)
		moved := false

		for j, toward := range population {
			if i == j || toward.Fitness >= from.Fitness {
				continue
			}
			r := floats.Distance(toFloats(from.Vector), toFloats(toward.Vector), 2)
			beta := s.params.Beta0 * math.Exp(-s.params.Gamma*r*r)
			for d := range position {
				attraction := beta * float64(toward.Vector[d]-from.Vector[d])
				position[d] += attraction + s.params.Alpha*(s.rng.Float64()-0.5)
			}
			moved = true
		}

		if !moved {
			next[i] = from.clone()
			continue
		}

		vector := make([]int, s.dims)
		for d, x := range position {
			vector[d] = s.bounds.clip(x)
		}
		next[i] = Candidate{Vector: vector, Fitness: s.evaluate(vector)}
	}

	return next
}

// evaluate scores a vector, mapping oracle failures to the worst possible
// fitness so one bad candidate cannot halt the search.
func (s *Swarm) evaluate(vector []int) float64 {
	s.evaluations++
	if s.metrics != nil {
		s.metrics.EvaluationsTotal.Inc()
	}

	fitness, err := s.oracle(vector)
	if err != nil {
		s.logger.V(logging.DEBUG).Info("candidate evaluation failed",
			"vector", vector, "error", err.Error())
		if s.metrics != nil {
			s.metrics.CandidateFailures.Inc()
		}
		return worstFitness
	}
	return fitness
}

func bestOf(population []Candidate) Candidate {
	best := population[0]
	for _, c := range population[1:] {
		if c.Fitness < best.Fitness {
			best = c
		}
	}
	return best
}

func toFloats(vector []int) []float64 {
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = float64(v)
	}
	return out
}
