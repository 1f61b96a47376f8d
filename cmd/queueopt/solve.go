package main

import (
	"github.com/spf13/cobra"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/pkg/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute steady-state performance of the scenario network",
	Long: `Solve runs exact mean value analysis on the scenario network and prints
the full set of performance metrics, including per-station utilization,
queue length and response time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := loadScenario()
		if err != nil {
			return err
		}
		net, err := scenario.BuildNetwork()
		if err != nil {
			return err
		}

		s := solver.New(solver.WithLogger(logging.Log()))
		metrics, err := s.Solve(net)
		if err != nil {
			return err
		}
		return printJSON(metrics)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
}
