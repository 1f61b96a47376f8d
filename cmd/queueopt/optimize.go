package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/internal/telemetry"
	"github.com/fireflyopt/queuenet-optimizer/pkg/config"
	"github.com/fireflyopt/queuenet-optimizer/pkg/optimizer"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search server allocations for the best objective score",
	Long: `Optimize solves the scenario's baseline network, runs the firefly search
over per-station server counts within the configured bounds, and prints
the baseline, the optimized configuration, the improvement and a cost
breakdown as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := loadScenario()
		if err != nil {
			return err
		}
		applyOptimizeOverrides(cmd.Flags(), scenario)
		if err := scenario.Validate(); err != nil {
			return err
		}

		net, err := scenario.BuildNetwork()
		if err != nil {
			return err
		}
		obj, err := scenario.BuildObjective()
		if err != nil {
			return err
		}

		opt := optimizer.New(
			optimizer.WithLogger(logging.Log()),
			optimizer.WithTelemetry(telemetry.New(prometheus.DefaultRegisterer)))
		result, err := opt.Optimize(net, obj, scenario.Bounds, scenario.Firefly)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// applyOptimizeOverrides lets flags and QUEUEOPT_* environment variables win
// over the scenario file.
func applyOptimizeOverrides(flags *pflag.FlagSet, s *config.Scenario) {
	if flags.Changed("objective") || viper.IsSet("objective") {
		s.Objective.Kind = viper.GetString("objective")
	}
	if flags.Changed("seed") || viper.IsSet("seed") {
		s.Firefly.Seed = viper.GetInt64("seed")
	}
	if flags.Changed("fireflies") {
		s.Firefly.NFireflies = viper.GetInt("fireflies")
	}
	if flags.Changed("iterations") {
		s.Firefly.MaxIterations = viper.GetInt("iterations")
	}
	if flags.Changed("alpha") {
		s.Firefly.Alpha = viper.GetFloat64("alpha")
	}
	if flags.Changed("beta0") {
		s.Firefly.Beta0 = viper.GetFloat64("beta0")
	}
	if flags.Changed("gamma") {
		s.Firefly.Gamma = viper.GetFloat64("gamma")
	}
	if flags.Changed("server-min") {
		s.Bounds.Min = viper.GetInt("server-min")
	}
	if flags.Changed("server-max") {
		s.Bounds.Max = viper.GetInt("server-max")
	}
}

func init() {
	f := optimizeCmd.Flags()
	f.String("objective", "", "objective kind (see 'queueopt objectives')")
	f.Int64("seed", 0, "random seed for reproducible runs")
	f.Int("fireflies", 0, "population size")
	f.Int("iterations", 0, "search iteration budget")
	f.Float64("alpha", 0, "random perturbation scale")
	f.Float64("beta0", 0, "attraction at zero distance")
	f.Float64("gamma", 0, "attraction decay coefficient")
	f.Int("server-min", 0, "lower bound on servers per station")
	f.Int("server-max", 0, "upper bound on servers per station")

	cobra.CheckErr(viper.BindPFlags(f))
	rootCmd.AddCommand(optimizeCmd)
}
