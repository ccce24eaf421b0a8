package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline figures: liability, simulated range and facility counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}
		summary, err := engine.Summarize(cmd.Context(), ns.Scenario)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, summary)
		case "console", "text":
			writeScenarioHeader(out, ns)
			fmt.Fprintf(out, "Liability:      %s\n", output.FormatBillions(summary.Liability))
			fmt.Fprintf(out, "90%% range:      %s – %s (median %s, mean %s)\n",
				output.FormatBillions(summary.MonteCarlo.P5), output.FormatBillions(summary.MonteCarlo.P95),
				output.FormatBillions(summary.MonteCarlo.P50), output.FormatBillions(summary.MonteCarlo.Mean))
			fmt.Fprintf(out, "Facilities:     %d (PSU %d, Private %d), %d high risk\n",
				summary.FacilityCounts.Total,
				summary.FacilityCounts.ByType[domain.OwnershipPSU],
				summary.FacilityCounts.ByType[domain.OwnershipPrivate],
				summary.FacilityCounts.HighRisk)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
