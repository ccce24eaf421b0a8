package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/spf13/cobra"
)

var (
	sensitivityFactor string
	sensitivityRange  float64
	sensitivityNoTorn bool
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep one factor and show how the liability responds",
	Long: `Vary carbon price or discount rate across ±range% in seven equal steps,
holding the other inputs fixed, and report a tornado of both factors.

Examples:
  carbonliab sensitivity --factor carbonPrice --range 30
  carbonliab sensitivity --factor discount_rate --range 20 -f csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		factor := set.SensitivityFactor
		if cmd.Flags().Changed("factor") {
			if factor, err = domain.ParseSensitivityFactor(sensitivityFactor); err != nil {
				return err
			}
		}
		rangePct := set.SensitivityRange
		if cmd.Flags().Changed("range") {
			rangePct = sensitivityRange
		}

		rows, err := engine.Sensitivity.Analyze(ns.Scenario, factor, rangePct)
		if err != nil {
			return err
		}
		analysis := &output.SensitivityAnalysis{Scenario: ns.Scenario, RangePct: rangePct, Rows: rows}
		if !sensitivityNoTorn {
			if analysis.Tornado, err = engine.Sensitivity.Tornado(ns.Scenario, rangePct); err != nil {
				return err
			}
		}

		text, err := output.NewSensitivityFormatter(outputFormat).FormatSensitivityAnalysis(analysis)
		if err != nil {
			return fmt.Errorf("failed to format sensitivity analysis: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	sensitivityCmd.Flags().StringVar(&sensitivityFactor, "factor", string(domain.FactorCarbonPrice), "Factor to vary: carbonPrice or discountRate")
	sensitivityCmd.Flags().Float64Var(&sensitivityRange, "range", 30, "Sweep half-width in percent")
	sensitivityCmd.Flags().BoolVar(&sensitivityNoTorn, "no-tornado", false, "Omit the two-factor tornado")
	rootCmd.AddCommand(sensitivityCmd)
}
