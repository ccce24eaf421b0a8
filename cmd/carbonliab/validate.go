package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Check a scenario file without running anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s is valid: %d scenarios\n", args[0], len(set.Scenarios))
		for _, ns := range set.Scenarios {
			fmt.Fprintf(out, "  %-20s $%s/t  %s%%  %s\n", ns.Name, ns.Scenario.CarbonPrice(), ns.Scenario.DiscountRate(), ns.Scenario.Pathway())
		}
		fmt.Fprintf(out, "simulation: %d runs, price variance %g, emission variance %g, %s percentiles\n",
			set.MonteCarlo.NumSimulations, set.MonteCarlo.PriceVariance, set.MonteCarlo.EmissionVariance, set.MonteCarlo.Percentile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
