package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/spf13/cobra"
)

var stakeholderView string

var stakeholdersCmd = &cobra.Command{
	Use:   "stakeholders",
	Short: "Show the Government, Industry and Investor perspectives on a scenario",
	Long: `Show headline metrics and recommended actions for each stakeholder.
Industry's compliance cost is the scenario liability; the other figures are
fixed reference values.

Examples:
  carbonliab stakeholders --pathway BAU
  carbonliab stakeholders --view investor -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}
		views, err := engine.StakeholderViews(ns.Scenario)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("view") {
			want, err := domain.ParseStakeholder(stakeholderView)
			if err != nil {
				return err
			}
			for _, v := range views {
				if v.Stakeholder == want {
					views = []domain.StakeholderView{v}
					break
				}
			}
		}

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, views)
		case "console", "text":
			writeScenarioHeader(out, ns)
			for _, v := range views {
				fmt.Fprintln(out)
				output.WriteStakeholderView(out, v)
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

var paybackCmd = &cobra.Command{
	Use:   "payback",
	Short: "Show the cumulative payback of the transition fund",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule := registry.PaybackSchedule()
		year, _ := registry.PaybackYear()
		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, struct {
				Fund        int                   `json:"fund"`
				PaybackYear int                   `json:"paybackYear"`
				Schedule    []domain.PaybackPoint `json:"schedule"`
			}{registry.TransitionFundBillions, year, schedule})
		case "console", "text":
			fmt.Fprintf(out, "INVESTMENT PAYBACK: $%dB TRANSITION FUND\n", registry.TransitionFundBillions)
			output.WritePayback(out, schedule, 20)
			fmt.Fprintf(out, "\nBack in the black by %d\n", year)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

func init() {
	stakeholdersCmd.Flags().StringVar(&stakeholderView, "view", "", "Only this perspective: Government, Industry or Investor")
	rootCmd.AddCommand(stakeholdersCmd)
	rootCmd.AddCommand(paybackCmd)
}
