package main

import (
	"github.com/spf13/cobra"

	"github.com/fireflyopt/queuenet-optimizer/pkg/objective"
)

var objectivesCmd = &cobra.Command{
	Use:   "objectives",
	Short: "List the available objective kinds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(objective.Catalog())
	},
}

func init() {
	rootCmd.AddCommand(objectivesCmd)
}
