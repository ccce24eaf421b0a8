package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute the point liability estimate for a scenario",
	Long: `Compute the liability for one scenario:

  13.1 × (price/50) × pathway multiplier × (10/rate)  USD billions

Examples:
  carbonliab estimate --price 75 --rate 8 --pathway Moderate
  carbonliab estimate -c scenarios.yaml -s "Policy Push" -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadScenarioSet()
		if err != nil {
			return err
		}
		ns, err := resolveScenario(cmd, set)
		if err != nil {
			return err
		}

		liability, err := calculation.ScenarioLiability(ns.Scenario)
		if err != nil {
			return err
		}
		logger.Sugar().Debugf("estimate %s: %s", ns.Scenario, liability)

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, struct {
				Name              string          `json:"name"`
				Scenario          domain.Scenario `json:"scenario"`
				Liability         decimal.Decimal `json:"liability"`
				ExcessOverBasePct decimal.Decimal `json:"excessOverBasePct"`
			}{ns.Name, ns.Scenario, liability, calculation.ExcessOverBasePct(liability)})
		case "console", "text":
			writeScenarioHeader(out, ns)
			fmt.Fprintf(out, "Liability:      %s (%s vs base case)\n",
				output.FormatBillions(liability), output.FormatPercentage(calculation.ExcessOverBasePct(liability)))
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

func writeScenarioHeader(out io.Writer, ns config.NamedScenario) {
	fmt.Fprintf(out, "Scenario:       %s\n", ns.Name)
	fmt.Fprintf(out, "Carbon price:   $%s/t\n", ns.Scenario.CarbonPrice())
	fmt.Fprintf(out, "Discount rate:  %s%%\n", ns.Scenario.DiscountRate())
	fmt.Fprintf(out, "Pathway:        %s\n", ns.Scenario.Pathway())
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
