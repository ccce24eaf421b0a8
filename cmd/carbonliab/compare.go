package main

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/compare"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/rgehrsitz/carbonliab/internal/transform"
	"github.com/spf13/cobra"
)

var (
	compareBase       string
	comparePathways   bool
	compareCompact    bool
	compareWorkers    int
	compareWith       string
	compareTransforms []string
	listTemplates     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare scenarios or pathways side by side",
	Long: `Compare the liability, simulated range and alerts of several scenarios
against a base.

With --config every scenario in the file is compared against --base (default:
the first). Without a file, or with --pathways, the resolved scenario is
evaluated on every decarbonization pathway at the same price and rate.

With --with or --transform the resolved scenario is compared against what-if
variants derived from it by built-in templates or ad-hoc transforms.

Examples:
  carbonliab compare --price 75
  carbonliab compare -c scenarios.yaml --base "Status Quo" -f csv
  carbonliab compare --with price_double,early_action
  carbonliab compare --transform "scale_price:pct=25;shift_pathway:steps=1"
  carbonliab compare --list-templates`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		set, ns, engine, err := setup(cmd)
		if err != nil {
			return err
		}

		ce := compare.NewCompareEngine(engine)
		if compareWorkers > 0 {
			ce.Concurrency = compareWorkers
		}

		var results *compare.ComparisonSet
		if compareWith != "" || len(compareTransforms) > 0 {
			var scenarios []config.NamedScenario
			scenarios, err = whatIfScenarios(ns)
			if err != nil {
				return err
			}
			results, err = ce.CompareScenarios(cmd.Context(), scenarios, ns.Name)
		} else if configPath != "" && !comparePathways {
			base := compareBase
			if base == "" {
				base = set.Base().Name
			}
			results, err = ce.CompareScenarios(cmd.Context(), set.Scenarios, base)
			if err == nil {
				results.ConfigPath = configPath
			}
		} else {
			results, err = ce.ComparePathways(cmd.Context(), ns.Scenario)
		}
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		out := cmd.OutOrStdout()
		switch output.NormalizeFormatName(outputFormat) {
		case "console":
			tf := &compare.TableFormatter{}
			if compareCompact {
				fmt.Fprintln(out, tf.FormatCompact(results))
			} else {
				fmt.Fprint(out, tf.Format(results))
			}
		case "csv":
			text, err := (&compare.CSVFormatter{}).Format(results)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
		case "json":
			text, err := (&compare.JSONFormatter{Pretty: true}).Format(results)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
		default:
			return fmt.Errorf("unsupported format %q (use table, csv or json)", outputFormat)
		}
		return nil
	},
}

// whatIfScenarios returns base followed by one variant per template and per
// transform list.
func whatIfScenarios(base config.NamedScenario) ([]config.NamedScenario, error) {
	scenarios := []config.NamedScenario{base}

	templates := transform.CreateBuiltInTemplates()
	for _, name := range transform.ParseTemplateList(compareWith) {
		tmpl, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (see --list-templates)", name)
		}
		scenario, err := tmpl.Apply(base.Scenario)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		scenarios = append(scenarios, config.NamedScenario{Name: tmpl.Name, Description: tmpl.Description, Scenario: scenario})
	}

	transforms := transform.NewTransformRegistry()
	for _, spec := range compareTransforms {
		list, err := transforms.ParseTransformList(spec)
		if err != nil {
			return nil, err
		}
		scenario, err := transform.ApplyTransforms(base.Scenario, list)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, config.NamedScenario{Name: spec, Scenario: scenario})
	}

	return scenarios, nil
}

func init() {
	compareCmd.Flags().StringVar(&compareBase, "base", "", "Base scenario name (default: the first in the file)")
	compareCmd.Flags().BoolVar(&comparePathways, "pathways", false, "Compare pathways even when a config file is given")
	compareCmd.Flags().BoolVar(&compareCompact, "compact", false, "One-line summary instead of the full table")
	compareCmd.Flags().IntVar(&compareWorkers, "workers", 0, "Scenarios evaluated concurrently (default 4)")
	compareCmd.Flags().StringVar(&compareWith, "with", "", "Comma-separated templates to compare against the scenario")
	compareCmd.Flags().StringArrayVar(&compareTransforms, "transform", nil, "Transform list, e.g. \"scale_price:pct=25;set_rate:rate=8\" (repeatable)")
	compareCmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in what-if templates")
	rootCmd.AddCommand(compareCmd)
}
