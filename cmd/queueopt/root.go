package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fireflyopt/queuenet-optimizer/internal/logging"
	"github.com/fireflyopt/queuenet-optimizer/pkg/config"
)

const envPrefix = "QUEUEOPT"

var (
	scenarioFile string
	verbosity    int

	rootCmd = &cobra.Command{
		Use:   "queueopt",
		Short: "Analyze and optimize closed queueing networks",
		Long: `queueopt computes exact steady-state performance of closed queueing
networks via mean value analysis and searches server allocations with a
firefly metaheuristic.

Scenarios can be described in a YAML file (--config) and overridden per
run with flags or QUEUEOPT_* environment variables. Results are printed
as JSON on stdout; logs go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLogger(logging.NewLogger(verbosity))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioFile, "config", "c", "",
		"path to a YAML scenario file (default: built-in reference scenario)")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0,
		"log verbosity: 0=info, 1=debug, 2=trace")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.OnInitialize(func() {
		if scenarioFile == "" {
			scenarioFile = viper.GetString("config")
		}
	})
}

// loadScenario returns the scenario from --config when given, otherwise the
// built-in reference scenario.
func loadScenario() (*config.Scenario, error) {
	if scenarioFile == "" {
		return config.Default(), nil
	}
	return config.Load(scenarioFile)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
