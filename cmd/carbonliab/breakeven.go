package main

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/breakeven"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	breakevenSolve    string
	breakevenTarget   float64
	breakevenMatch    string
	breakevenMinPrice float64
	breakevenMaxPrice float64
	breakevenMinRate  float64
	breakevenMaxRate  float64
)

var breakevenCmd = &cobra.Command{
	Use:     "breakeven",
	Aliases: []string{"break-even"},
	Short:   "Find the carbon price or discount rate that reaches a target liability",
	Long: `Solve for the carbon price or discount rate at which the resolved
scenario's liability reaches a target.

The target is either a fixed liability in USD billions (--target) or the
liability another pathway carries at the scenario's price and rate
(--match-pathway). With --solve all both parameters are solved and any that
cannot reach the target within its bounds is skipped.

Examples:
  carbonliab breakeven --match-pathway BAU
  carbonliab breakeven --pathway BAU --target 13.1 --solve rate
  carbonliab breakeven --target 25 --max-price 150 -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ns, _, err := setup(cmd)
		if err != nil {
			return err
		}

		target, err := breakeven.ParseTarget(breakevenSolve)
		if err != nil {
			return err
		}
		constraints, goal, err := breakevenConstraints(cmd)
		if err != nil {
			return err
		}

		solver := breakeven.NewDefaultSolver()
		solver.SetLogger(logger.Sugar())

		format := output.NormalizeFormatName(outputFormat)
		if format != "console" && format != "json" {
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
		out := cmd.OutOrStdout()

		if target == breakeven.OptimizeAll {
			md, err := solver.OptimizeMultiDimensional(cmd.Context(), ns.Scenario, constraints, goal)
			if err != nil {
				return err
			}
			if format == "json" {
				text, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(md)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(md))
			return nil
		}

		result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
			Scenario:    ns.Scenario,
			Target:      target,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			return err
		}
		if format == "json" {
			text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

// breakevenConstraints maps the flags onto solver constraints. Bounds left
// unset fall back to the solver defaults.
func breakevenConstraints(cmd *cobra.Command) (breakeven.Constraints, breakeven.OptimizationGoal, error) {
	var c breakeven.Constraints
	flags := cmd.Flags()

	hasTarget, hasMatch := flags.Changed("target"), flags.Changed("match-pathway")
	var goal breakeven.OptimizationGoal
	switch {
	case hasTarget && hasMatch:
		return c, "", errors.New("--target and --match-pathway are mutually exclusive")
	case hasTarget:
		t, err := domain.FiniteDecimal("target", breakevenTarget)
		if err != nil {
			return c, "", err
		}
		c.TargetLiability = &t
		goal = breakeven.GoalMatchLiability
	case hasMatch:
		p, err := domain.ParsePathway(breakevenMatch)
		if err != nil {
			return c, "", err
		}
		c.TargetPathway = p
		goal = breakeven.GoalMatchPathway
	default:
		return c, "", errors.New("one of --target or --match-pathway is required")
	}

	bounds := []struct {
		flag string
		v    float64
		dst  **decimal.Decimal
	}{
		{"min-price", breakevenMinPrice, &c.MinCarbonPrice},
		{"max-price", breakevenMaxPrice, &c.MaxCarbonPrice},
		{"min-rate", breakevenMinRate, &c.MinDiscountRate},
		{"max-rate", breakevenMaxRate, &c.MaxDiscountRate},
	}
	for _, b := range bounds {
		if !flags.Changed(b.flag) {
			continue
		}
		d, err := domain.FiniteDecimal(b.flag, b.v)
		if err != nil {
			return c, "", err
		}
		*b.dst = &d
	}
	return c, goal, nil
}

func init() {
	f := breakevenCmd.Flags()
	f.StringVar(&breakevenSolve, "solve", "all", "Parameter to solve for: carbon_price, discount_rate or all")
	f.Float64Var(&breakevenTarget, "target", 0, "Target liability in USD billions")
	f.StringVar(&breakevenMatch, "match-pathway", "", "Match the liability of this pathway at the current price and rate")
	f.Float64Var(&breakevenMinPrice, "min-price", 0, "Lowest carbon price to search (default 0)")
	f.Float64Var(&breakevenMaxPrice, "max-price", 0, "Highest carbon price to search (default 500)")
	f.Float64Var(&breakevenMinRate, "min-rate", 0, "Lowest discount rate to search (default 1)")
	f.Float64Var(&breakevenMaxRate, "max-rate", 0, "Highest discount rate to search (default 30)")
	rootCmd.AddCommand(breakevenCmd)
}
