package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/spf13/cobra"
)

var (
	mcRuns             int
	mcPriceVariance    float64
	mcEmissionVariance float64
	mcBins             int
	mcSamples          bool
)

var monteCarloCmd = &cobra.Command{
	Use:     "monte-carlo",
	Aliases: []string{"mc"},
	Short:   "Simulate the liability distribution under price and emission uncertainty",
	Long: `Run a Monte Carlo simulation of the scenario. Each draw scales the
liability by a uniform price factor and a uniform emission factor centred on 1.

Examples:
  carbonliab monte-carlo --runs 10000 --seed 42
  carbonliab mc --price-variance 0.8 --bins 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		cfg := set.MonteCarlo
		if cmd.Flags().Changed("runs") {
			cfg.NumSimulations = mcRuns
		}
		if cmd.Flags().Changed("price-variance") {
			cfg.PriceVariance = mcPriceVariance
		}
		if cmd.Flags().Changed("emission-variance") {
			cfg.EmissionVariance = mcEmissionVariance
		}

		result, err := engine.RunMonteCarlo(cmd.Context(), ns.Scenario, cfg.NumSimulations, cfg.PriceVariance, cfg.EmissionVariance)
		if err != nil {
			return err
		}
		bins := result.Histogram(mcBins)
		if !mcSamples {
			result.Samples = nil
		}

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, struct {
				Name      string `json:"name"`
				Result    any    `json:"result"`
				Histogram any    `json:"histogram,omitempty"`
			}{ns.Name, result, bins})
		case "console", "text":
			writeScenarioHeader(out, ns)
			fmt.Fprintf(out, "\nMONTE CARLO: %d simulations (price ±%g, emissions ±%g)\n",
				result.Simulations, cfg.PriceVariance/2, cfg.EmissionVariance/2)
			fmt.Fprintln(out, strings.Repeat("=", 50))
			for _, row := range []struct {
				label string
				value string
			}{
				{"P5", output.FormatBillions(result.P5)},
				{"P25", output.FormatBillions(result.P25)},
				{"P50", output.FormatBillions(result.P50)},
				{"P75", output.FormatBillions(result.P75)},
				{"P95", output.FormatBillions(result.P95)},
				{"Mean", output.FormatBillions(result.Mean)},
				{"Std Dev", output.FormatBillions(result.Std)},
			} {
				fmt.Fprintf(out, "%-10s %10s\n", row.label, row.value)
			}
			if len(bins) > 0 {
				fmt.Fprintln(out)
				output.WriteHistogram(out, bins, 40)
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

func init() {
	monteCarloCmd.Flags().IntVarP(&mcRuns, "runs", "n", 0, "Number of simulations (default from config, else 1000)")
	monteCarloCmd.Flags().Float64Var(&mcPriceVariance, "price-variance", 0, "Full width of the price factor band (default 0.6)")
	monteCarloCmd.Flags().Float64Var(&mcEmissionVariance, "emission-variance", 0, "Full width of the emission factor band (default 0.4)")
	monteCarloCmd.Flags().IntVar(&mcBins, "bins", 0, "Print a histogram with this many bins")
	monteCarloCmd.Flags().BoolVar(&mcSamples, "samples", false, "Include raw draws in JSON output")
	rootCmd.AddCommand(monteCarloCmd)
}
