package solver

import (
	"math"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
)

// utilizationSlack absorbs floating point noise around full utilization.
// A closed network can sit at exactly rho = 1 (every server busy at the
// bottleneck); only values beyond the slack indicate a numerically unstable
// configuration.
const utilizationSlack = 1e-9

// Solver runs exact mean value analysis on closed queueing networks.
// The zero value is not usable; construct with New.
type Solver struct {
	logger logr.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for trace output.
func WithLogger(l logr.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New builds a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{logger: logging.Log()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve is a convenience wrapper around New().Solve.
func Solve(net *core.Network) (*core.PerformanceMetrics, error) {
	return New().Solve(net)
}

// stationState holds the per-station inputs and recursion state.
type stationState struct {
	name    string
	visit   float64 // visit weight v_k
	service float64 // mean service time s_k = 1/mu_k
	servers int     // m_k

	queue float64 // Q_k(n-1), then Q_k(n)

	// Marginal probabilities p_k(j, n) for j = 0..m_k-1, tracked only for
	// multi-server stations. prob holds level n-1 while computing level n;
	// next receives level n and the slices are swapped.
	prob []float64
	next []float64
}

// Solve computes the exact steady-state metrics of net at its full customer
// population. It returns a ConfigurationError when the recursion produces a
// station utilization above 1, which indicates numerical breakdown.
func (s *Solver) Solve(net *core.Network) (*core.PerformanceMetrics, error) {
	n := net.Customers()
	stations := net.Stations()

	states := make([]*stationState, len(stations))
	for k, st := range stations {
		state := &stationState{
			name:    st.Name,
			visit:   st.VisitWeight,
			service: 1.0 / st.ServiceRate,
			servers: st.Servers,
		}
		if st.Servers > 1 {
			state.prob = make([]float64, st.Servers)
			state.next = make([]float64, st.Servers)
			state.prob[0] = 1 // empty station at population 0
		}
		states[k] = state
	}

	var throughput float64
	responseTimes := make([]float64, len(states))

	for pop := 1; pop <= n; pop++ {
		// Response times from the previous population level.
		for k, st := range states {
			if st.servers == 1 {
				responseTimes[k] = st.service * (1 + st.queue)
				continue
			}
			// Multi-server: an arriving customer waits only for work
			// beyond the free-server capacity, captured by the marginal
			// probabilities of states with idle servers.
			idle := 0.0
			for j := 0; j <= st.servers-2; j++ {
				idle += float64(st.servers-1-j) * st.prob[j]
			}
			responseTimes[k] = st.service / float64(st.servers) * (1 + st.queue + idle)
		}

		// System throughput via Little's law over one network cycle.
		cycle := 0.0
		for k, st := range states {
			cycle += st.visit * responseTimes[k]
		}
		if cycle <= 0 {
			// Cannot happen with positive rates and weights, asserted
			// to keep the division below total.
			return nil, core.NewConfigurationError(
				"aggregate residence time is zero at population %d", pop)
		}
		throughput = float64(pop) / cycle

		// Queue lengths and marginal probabilities at this level.
		for k, st := range states {
			st.queue = throughput * st.visit * responseTimes[k]
			if st.servers == 1 {
				continue
			}
			demand := st.visit * st.service * throughput
			for j := 1; j <= st.servers-1; j++ {
				st.next[j] = demand / float64(j) * st.prob[j-1]
			}
			tail := demand
			for j := 1; j <= st.servers-1; j++ {
				tail += float64(st.servers-j) * st.next[j]
			}
			st.next[0] = 1 - tail/float64(st.servers)
			st.prob, st.next = st.next, st.prob
		}
	}

	metrics := &core.PerformanceMetrics{
		Customers:    n,
		TotalServers: net.TotalServers(),
		Throughput:   throughput,
		Stations:     make([]core.StationMetrics, len(states)),
	}

	utilizations := make([]float64, len(states))
	queues := make([]float64, len(states))
	for k, st := range states {
		rho := throughput * st.visit * st.service / float64(st.servers)
		switch {
		case rho > 1+utilizationSlack:
			return nil, core.NewConfigurationError(
				"station %q: utilization %.6f exceeds 1, network is unstable", st.name, rho)
		case rho > 1:
			rho = 1
		}
		utilizations[k] = rho
		queues[k] = st.queue
		metrics.Stations[k] = core.StationMetrics{
			Name:         st.name,
			ServiceRate:  1 / st.service,
			Servers:      st.servers,
			VisitWeight:  st.visit,
			Utilization:  rho,
			QueueLength:  st.queue,
			ResponseTime: responseTimes[k],
			Throughput:   throughput * st.visit,
		}
	}

	metrics.MeanResponseTime = float64(n) / throughput
	metrics.MeanQueueLength = floats.Sum(queues)
	metrics.MaxQueueLength = floats.Max(queues)
	metrics.UtilizationVariance = populationVariance(utilizations)

	s.logger.V(logging.TRACE).Info("solved network",
		"customers", n,
		"throughput", throughput,
		"meanResponseTime", metrics.MeanResponseTime)

	return metrics, nil
}

// populationVariance is the biased variance sum((x-mean)^2)/len, which treats
// the stations as the whole population rather than a sample.
func populationVariance(xs []float64) float64 {
	mean := stat.Mean(xs, nil)
	total := 0.0
	for _, x := range xs {
		d := x - mean
		total += d * d
	}
	v := total / float64(len(xs))
	if math.IsNaN(v) {
		return 0
	}
	return v
}
