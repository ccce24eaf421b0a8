package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// OptimizeMultiDimensional solves every target for the goal and collects the
// converged results. Targets that cannot reach the goal within their bounds
// are skipped.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	scenario domain.Scenario,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {

	targets := []OptimizationTarget{
		OptimizeCarbonPrice,
		OptimizeDiscountRate,
	}

	var results []OptimizationResult
	var lastErr error
	// Solve each target independently
	for _, target := range targets {
		req := OptimizationRequest{
			Scenario:      scenario,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			s.logger.Infof("skipping %s: %v", target, err)
			lastErr = err
			continue
		}

		// Only keep successful optimizations
		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
			Cause:     lastErr,
		}
	}

	// Generate recommendations
	mdResult := &MultiDimensionalResult{Results: results}
	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(scenario, mdResult)
	return mdResult, nil
}

// generateMultiDimensionalRecommendations phrases each break-even point as a
// policy statement relative to the starting scenario
func (s *Solver) generateMultiDimensionalRecommendations(scenario domain.Scenario, result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, r := range result.Results {
		switch {
		case r.OptimalCarbonPrice != nil:
			verb := "rises"
			if r.OptimalCarbonPrice.LessThan(scenario.CarbonPrice()) {
				verb = "falls"
			}
			recommendations = append(recommendations,
				fmt.Sprintf("Liability reaches $%sB if the carbon price %s to $%s/t (from $%s/t)",
					r.AchievedLiability.StringFixed(1), verb,
					r.OptimalCarbonPrice.StringFixed(2), scenario.CarbonPrice().String()))
		case r.OptimalDiscountRate != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Liability reaches $%sB at a %s%% discount rate (from %s%%)",
					r.AchievedLiability.StringFixed(1),
					r.OptimalDiscountRate.StringFixed(2), scenario.DiscountRate().String()))
		}
	}

	if len(result.Results) == 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("Only %s can reach the target within its bounds", result.Results[0].Request.Target))
	}

	return recommendations
}

// OptimizeAllTargets asks, for both price and rate, where the scenario's
// liability equals that of pathway at the current parameters.
func (s *Solver) OptimizeAllTargets(ctx context.Context, scenario domain.Scenario, pathway domain.Pathway) (*MultiDimensionalResult, error) {
	constraints := DefaultConstraints()
	constraints.TargetPathway = pathway
	return s.OptimizeMultiDimensional(ctx, scenario, constraints, GoalMatchPathway)
}
