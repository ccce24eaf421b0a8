package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/spf13/cobra"
)

var insightsStyle string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List the advisory insights for a scenario",
	Long: `Evaluate the insight rules (price benchmarks, pathway risk, structural
notes and elevated liability) against a scenario.

Formats: console (default), json, markdown, terminal (markdown rendered for
the terminal).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}
		insights, err := engine.GenerateInsights(ns.Scenario)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch output.NormalizeFormatName(outputFormat) {
		case "json":
			return writeJSON(out, struct {
				Name       string `json:"name"`
				Insights   any    `json:"insights"`
				AlertCount int    `json:"alertCount"`
			}{ns.Name, insights, calculation.AlertCount(insights)})
		case "markdown":
			fmt.Fprint(out, output.InsightsMarkdown(insights))
			return nil
		case "terminal":
			rendered, err := output.RenderMarkdown(output.InsightsMarkdown(insights), insightsStyle, 100)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		case "console":
			fmt.Fprintf(out, "%s: %d insights, %d alerts\n\n", ns.Name, len(insights), calculation.AlertCount(insights))
			for _, in := range insights {
				fmt.Fprintf(out, "[%s] %s\n", in.Kind, in.Title)
				if in.Detail != "" {
					fmt.Fprintf(out, "    %s\n", in.Detail)
				}
				if in.Action != "" {
					fmt.Fprintf(out, "    → %s\n", in.Action)
				}
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console, json, markdown or terminal)", outputFormat)
		}
	},
}

func init() {
	insightsCmd.Flags().StringVar(&insightsStyle, "style", "auto", "glamour style for terminal output (auto, dark, light, notty)")
	rootCmd.AddCommand(insightsCmd)
}
