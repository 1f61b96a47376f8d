package optimizer

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fireflyopt/queuenet-optimizer/internal/telemetry"
	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
	"github.com/fireflyopt/queuenet-optimizer/pkg/objective"
	"github.com/fireflyopt/queuenet-optimizer/pkg/swarm"
)

// threeTierNetwork is the reference configuration used across the suite:
// three stations at rates 5, 3 and 4 with two servers each and twenty
// circulating customers.
func threeTierNetwork() *core.Network {
	net, err := core.NewNetwork(20, []core.Station{
		{Name: "web", ServiceRate: 5, Servers: 2},
		{Name: "app", ServiceRate: 3, Servers: 2},
		{Name: "db", ServiceRate: 4, Servers: 2},
	})
	Expect(err).NotTo(HaveOccurred())
	return net
}

func searchParams(seed int64) swarm.Params {
	p := swarm.DefaultParams()
	p.NFireflies = 15
	p.MaxIterations = 30
	p.Seed = seed
	return p
}

var _ = Describe("Optimize", func() {
	var (
		opt    *Optimizer
		net    *core.Network
		bounds swarm.Bounds
	)

	BeforeEach(func() {
		opt = New()
		net = threeTierNetwork()
		bounds = swarm.Bounds{Min: 1, Max: 6}
	})

	Context("minimizing mean response time", func() {
		It("should never return a configuration worse than the baseline", func() {
			result, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(1))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Optimized.Metrics.MeanResponseTime).To(
				BeNumerically("<=", result.Baseline.Metrics.MeanResponseTime))
			Expect(result.Improvement.Absolute).To(BeNumerically(">=", 0))
			Expect(result.Improvement.Percent).To(BeNumerically(">=", 0))
		})

		It("should leave the input network untouched", func() {
			_, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(net.ServerCounts()).To(Equal([]int{2, 2, 2}))
		})

		It("should report a baseline matching a direct solve", func() {
			result, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(1))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Baseline.Metrics.Throughput).To(BeNumerically("~", 17.9574511362, 1e-8))
			Expect(result.Baseline.Score).To(BeNumerically("~", 1.1137438074, 1e-8))
			Expect(result.Baseline.Network.Customers).To(Equal(20))
		})

		It("should record a non-increasing convergence history", func() {
			result, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(2))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.History).To(HaveLen(30))
			for i := 1; i < len(result.History); i++ {
				Expect(result.History[i]).To(BeNumerically("<=", result.History[i-1]))
			}
			Expect(result.Evaluations).To(BeNumerically(">", 0))
		})

		It("should carry no cost breakdown", func() {
			result, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Cost).To(BeNil())
		})
	})

	Context("maximizing throughput", func() {
		It("should adjust the improvement sign so positive means better", func() {
			result, err := opt.Optimize(net, objective.Throughput{}, bounds, searchParams(3))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Optimized.Score).To(BeNumerically(">=", result.Baseline.Score))
			Expect(result.Improvement.Absolute).To(
				BeNumerically("~", result.Optimized.Score-result.Baseline.Score, 1e-12))
		})
	})

	Context("minimizing the maximum queue", func() {
		It("should attach an added-servers cost breakdown", func() {
			result, err := opt.Optimize(net, objective.MaxQueueLength{}, bounds, searchParams(4))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Cost).NotTo(BeNil())
			Expect(result.Cost.Type).To(Equal(CostAddedServers))
			Expect(result.Cost.BaselineServers).To(Equal(6))
			Expect(result.Cost.AddedServers).To(
				Equal(result.Cost.OptimizedServers - result.Cost.BaselineServers))
			Expect(result.Cost.BaselineEconomics).To(BeNil())
		})
	})

	Context("maximizing profit", func() {
		var profit objective.Profit

		BeforeEach(func() {
			profit = objective.Profit{RevenueRate: 10, ServerUnitCost: 1, CustomerHoldingCost: 0.5}
		})

		It("should decompose revenue and costs consistently", func() {
			result, err := opt.Optimize(net, profit, bounds, searchParams(5))
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Cost).NotTo(BeNil())
			Expect(result.Cost.Type).To(Equal(CostEconomics))

			for _, e := range []*Economics{result.Cost.BaselineEconomics, result.Cost.OptimizedEconomics} {
				Expect(e).NotTo(BeNil())
				Expect(e.Profit).To(BeNumerically("~", e.Revenue-e.ServerCost-e.HoldingCost, 1e-9))
			}
			Expect(result.Cost.BaselineEconomics.Profit).To(
				BeNumerically("~", result.Baseline.Score, 1e-9))
			Expect(result.Cost.OptimizedEconomics.Profit).To(
				BeNumerically("~", result.Optimized.Score, 1e-9))
			Expect(result.Cost.BaselineEconomics.HoldingCost).To(BeNumerically("~", 10.0, 1e-12))
		})

		It("should relate ROI to the capacity investment", func() {
			result, err := opt.Optimize(net, profit, bounds, searchParams(5))
			Expect(err).NotTo(HaveOccurred())

			if result.Cost.Investment > 0 {
				Expect(result.Cost.ROIPercent).To(BeNumerically("~",
					result.Improvement.Absolute/result.Cost.Investment*100, 1e-9))
			} else {
				Expect(result.Cost.ROIPercent).To(BeZero())
			}
		})
	})

	Context("reproducibility", func() {
		It("should produce identical results for identical seeds", func() {
			first, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(42))
			Expect(err).NotTo(HaveOccurred())
			second, err := opt.Optimize(threeTierNetwork(), objective.MeanResponseTime{}, bounds, searchParams(42))
			Expect(err).NotTo(HaveOccurred())

			Expect(cmp.Diff(first, second)).To(BeEmpty())
		})
	})

	Context("with invalid inputs", func() {
		It("should reject invalid search parameters", func() {
			_, err := opt.Optimize(net, objective.MeanResponseTime{}, bounds, swarm.Params{})
			Expect(err).To(HaveOccurred())
			var cfgErr *core.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
		})

		It("should reject invalid bounds", func() {
			_, err := opt.Optimize(net, objective.MeanResponseTime{}, swarm.Bounds{Min: 5, Max: 2}, searchParams(1))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with telemetry attached", func() {
		It("should count solves and evaluations", func() {
			reg := prometheus.NewRegistry()
			instrumented := New(WithTelemetry(telemetry.New(reg)))

			_, err := instrumented.Optimize(net, objective.MeanResponseTime{}, bounds, searchParams(1))
			Expect(err).NotTo(HaveOccurred())

			families, err := reg.Gather()
			Expect(err).NotTo(HaveOccurred())
			names := map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
			}
			Expect(names).To(HaveKey("queuenet_optimizer_solves_total"))
			Expect(names).To(HaveKey("queuenet_optimizer_evaluations_total"))
			Expect(names).To(HaveKey("queuenet_optimizer_optimization_duration_seconds"))
		})
	})
})
