package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T, price, rate float64, pathway string) domain.Scenario {
	t.Helper()
	s, err := domain.NewScenario(price, rate, pathway)
	require.NoError(t, err)
	return s
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver()

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	def := DefaultSolverOptions()
	if !solver.Options.Tolerance.Equal(def.Tolerance) || solver.Options.MaxIterations != def.MaxIterations {
		t.Errorf("Expected default options, got %+v", solver.Options)
	}

	solver.SetLogger(nil)
	if solver.logger == nil {
		t.Error("SetLogger(nil) should install a no-op logger")
	}
}

func TestOptimize_CarbonPriceMatchingPathway(t *testing.T) {
	// Aggressive at $72/t costs what BAU costs at $50/t: 13.1 * 1.44 = 18.864
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchPathway,
		Constraints: Constraints{TargetPathway: domain.PathwayBAU},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.OptimalCarbonPrice)
	assert.Nil(t, result.OptimalDiscountRate)
	assert.Equal(t, "72.00", result.OptimalCarbonPrice.StringFixed(2))
	assert.Equal(t, "18.9", result.TargetLiability.String())
	assert.Equal(t, "18.9", result.AchievedLiability.String())
	assert.Equal(t, "13.1", result.BaseLiability.String())
	assert.Equal(t, "5.8", result.LiabilityDiffFromBase.String())
	assert.Equal(t, domain.PathwayAggressive, result.Solved.Pathway())
	assert.Greater(t, result.Iterations, 0)
}

func TestOptimize_DiscountRateMatchingPathway(t *testing.T) {
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeDiscountRate,
		Goal:        GoalMatchPathway,
		Constraints: Constraints{TargetPathway: domain.PathwayBAU},
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalDiscountRate)
	assert.Equal(t, "6.94", result.OptimalDiscountRate.StringFixed(2))
	assert.Equal(t, "18.9", result.AchievedLiability.String())
}

func TestOptimize_DiscountRateMatchingLiability(t *testing.T) {
	// BAU falls back to the base case liability at 14.4%: 13.1 * 1.44 * 10 / 14.4
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    scenario(t, 50, 10, "BAU"),
		Target:      OptimizeDiscountRate,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{TargetLiability: dec(13.1)},
	})
	require.NoError(t, err)

	assert.Equal(t, "14.40", result.OptimalDiscountRate.StringFixed(2))
	assert.Equal(t, "13.1", result.AchievedLiability.String())
	assert.Equal(t, "18.9", result.BaseLiability.String())
	assert.Equal(t, "-5.8", result.LiabilityDiffFromBase.String())
}

func TestOptimize_TargetAtBound(t *testing.T) {
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{TargetLiability: dec(0)},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Lower bound meets target", result.ConvergenceInfo)
	assert.True(t, result.OptimalCarbonPrice.IsZero())
	assert.Equal(t, 0, result.Iterations)
}

func TestOptimize_Unreachable(t *testing.T) {
	// $500/t caps Early Action at 13.1 * 10 * 0.92 = $120.5B
	_, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    scenario(t, 50, 10, "Early Action"),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{TargetLiability: dec(1000)},
	})
	require.Error(t, err)

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "optimize_carbon_price", beErr.Operation)
	assert.Contains(t, err.Error(), "$120.5B")
}

func TestOptimize_CustomBounds(t *testing.T) {
	_, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario: domain.DefaultScenario(),
		Target:   OptimizeCarbonPrice,
		Goal:     GoalMatchPathway,
		Constraints: Constraints{
			MaxCarbonPrice: dec(60),
			TargetPathway:  domain.PathwayBAU,
		},
	})
	assert.Error(t, err, "$72/t lies outside [0, 60]")

	// a lone bound is checked against the defaults it is combined with
	_, err = NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeDiscountRate,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{MinDiscountRate: dec(40), TargetLiability: dec(3)},
	})
	assert.Error(t, err)
}

func TestOptimize_RequestErrors(t *testing.T) {
	solver := NewDefaultSolver()
	ctx := context.Background()

	tests := []struct {
		name string
		req  OptimizationRequest
	}{
		{
			name: "missing target liability",
			req:  OptimizationRequest{Scenario: domain.DefaultScenario(), Target: OptimizeCarbonPrice, Goal: GoalMatchLiability},
		},
		{
			name: "missing target pathway",
			req:  OptimizationRequest{Scenario: domain.DefaultScenario(), Target: OptimizeCarbonPrice, Goal: GoalMatchPathway},
		},
		{
			name: "unknown goal",
			req:  OptimizationRequest{Scenario: domain.DefaultScenario(), Target: OptimizeCarbonPrice, Goal: "minimize"},
		},
		{
			name: "all is not a single target",
			req: OptimizationRequest{Scenario: domain.DefaultScenario(), Target: OptimizeAll, Goal: GoalMatchLiability,
				Constraints: Constraints{TargetLiability: dec(20)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Optimize(ctx, tt.req)
			if err == nil {
				t.Fatalf("Expected error, got %+v", result)
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestOptimize_ZeroRateScenario(t *testing.T) {
	_, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    scenario(t, 50, 0, "Aggressive"),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{TargetLiability: dec(20)},
	})
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestOptimize_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver().Optimize(ctx, OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchLiability,
		Constraints: Constraints{TargetLiability: dec(20)},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimize_MaxIterations(t *testing.T) {
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:      domain.DefaultScenario(),
		Target:        OptimizeCarbonPrice,
		Goal:          GoalMatchLiability,
		Constraints:   Constraints{TargetLiability: dec(20)},
		MaxIterations: 2,
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "Max iterations (2) reached", result.ConvergenceInfo)
}

func TestOptimizeAllTargets(t *testing.T) {
	md, err := NewDefaultSolver().OptimizeAllTargets(context.Background(), domain.DefaultScenario(), domain.PathwayBAU)
	require.NoError(t, err)

	require.Len(t, md.Results, 2)
	assert.Equal(t, OptimizeCarbonPrice, md.Results[0].Request.Target)
	assert.Equal(t, OptimizeDiscountRate, md.Results[1].Request.Target)
	assert.Equal(t, []string{
		"Liability reaches $18.9B if the carbon price rises to $72.00/t (from $50/t)",
		"Liability reaches $18.9B at a 6.94% discount rate (from 10%)",
	}, md.Recommendations)
}

func TestOptimizeMultiDimensional_SkipsUnreachable(t *testing.T) {
	// $2B needs a 65% discount rate, beyond the 30% cap
	md, err := NewDefaultSolver().OptimizeMultiDimensional(context.Background(), domain.DefaultScenario(),
		Constraints{TargetLiability: dec(2)}, GoalMatchLiability)
	require.NoError(t, err)

	require.Len(t, md.Results, 1)
	assert.Equal(t, OptimizeCarbonPrice, md.Results[0].Request.Target)
	require.Len(t, md.Recommendations, 2)
	assert.Contains(t, md.Recommendations[0], "falls to $7.6")
	assert.True(t, strings.HasPrefix(md.Recommendations[1], "Only carbon_price"))
}

func TestOptimizeMultiDimensional_NothingReachable(t *testing.T) {
	_, err := NewDefaultSolver().OptimizeMultiDimensional(context.Background(), domain.DefaultScenario(),
		Constraints{TargetLiability: dec(500)}, GoalMatchLiability)
	require.Error(t, err)

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "optimize_multi_dimensional", beErr.Operation)
}
