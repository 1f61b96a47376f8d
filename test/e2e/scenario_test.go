/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package e2e

import (
	"encoding/json"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fireflyopt/queuenet-optimizer/pkg/config"
	"github.com/fireflyopt/queuenet-optimizer/pkg/optimizer"
	"github.com/fireflyopt/queuenet-optimizer/pkg/solver"
)

var _ = Describe("Scenario pipeline", func() {
	Context("with the built-in reference scenario", func() {
		It("should solve and optimize end to end", func() {
			scenario := config.Default()
			scenario.Firefly.Seed = 1
			scenario.Firefly.NFireflies = 15
			scenario.Firefly.MaxIterations = 30

			net, err := scenario.BuildNetwork()
			Expect(err).NotTo(HaveOccurred())
			obj, err := scenario.BuildObjective()
			Expect(err).NotTo(HaveOccurred())

			metrics, err := solver.Solve(net)
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Throughput).To(BeNumerically(">", 0))

			result, err := optimizer.New().Optimize(net, obj, scenario.Bounds, scenario.Firefly)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Optimized.Score).To(BeNumerically("<=", result.Baseline.Score))
		})
	})

	Context("with a scenario loaded from a file", func() {
		var scenario *config.Scenario

		BeforeEach(func() {
			var err error
			scenario, err = config.Load(filepath.Join("testdata", "profit.yaml"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should carry the file's network and search settings", func() {
			Expect(scenario.Network.Customers).To(Equal(40))
			Expect(scenario.Network.Stations).To(HaveLen(3))
			Expect(scenario.Bounds.Max).To(Equal(8))
			Expect(scenario.Firefly.Seed).To(Equal(int64(17)))
		})

		It("should optimize profit and produce a JSON-serializable result", func() {
			net, err := scenario.BuildNetwork()
			Expect(err).NotTo(HaveOccurred())
			obj, err := scenario.BuildObjective()
			Expect(err).NotTo(HaveOccurred())

			result, err := optimizer.New().Optimize(net, obj, scenario.Bounds, scenario.Firefly)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Objective).To(Equal("profit"))
			Expect(result.Optimized.Score).To(BeNumerically(">=", result.Baseline.Score))
			Expect(result.Cost).NotTo(BeNil())
			Expect(result.Cost.BaselineEconomics).NotTo(BeNil())

			raw, err := json.Marshal(result)
			Expect(err).NotTo(HaveOccurred())

			var decoded map[string]any
			Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded).To(HaveKey("baseline"))
			Expect(decoded).To(HaveKey("optimized"))
			Expect(decoded).To(HaveKey("improvement"))
			Expect(decoded).To(HaveKey("cost"))
		})

		It("should reproduce the same result for the same seed", func() {
			run := func() *optimizer.Result {
				net, err := scenario.BuildNetwork()
				Expect(err).NotTo(HaveOccurred())
				obj, err := scenario.BuildObjective()
				Expect(err).NotTo(HaveOccurred())
				result, err := optimizer.New().Optimize(net, obj, scenario.Bounds, scenario.Firefly)
				Expect(err).NotTo(HaveOccurred())
				return result
			}

			first := run()
			second := run()
			Expect(second.Optimized.Network).To(Equal(first.Optimized.Network))
			Expect(second.Optimized.Score).To(Equal(first.Optimized.Score))
			Expect(second.History).To(Equal(first.History))
		})
	})
})
