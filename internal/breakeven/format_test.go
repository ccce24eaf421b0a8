package breakeven

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solvedPrice(t *testing.T) *OptimizationResult {
	t.Helper()
	result, err := NewDefaultSolver().Optimize(context.Background(), OptimizationRequest{
		Scenario:    domain.DefaultScenario(),
		Target:      OptimizeCarbonPrice,
		Goal:        GoalMatchPathway,
		Constraints: Constraints{TargetPathway: domain.PathwayBAU},
	})
	require.NoError(t, err)
	return result
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(solvedPrice(t))

	for _, want := range []string{
		"BREAK-EVEN ANALYSIS",
		"Scenario:            $50/t, 10%, Aggressive",
		"Solve For:           carbon_price",
		"Goal:                liability of the BAU pathway",
		"✓ Converged",
		"Carbon Price:        $72.00/t",
		"Target:              $18.9B",
		"Achieved:            $18.9B",
		"Starting Scenario:   $13.1B",
		"Change:              +$5.8B",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	assert.NotContains(t, out, "Discount Rate:")
}

func TestTableFormatter_FormatMultiDimensional(t *testing.T) {
	md, err := NewDefaultSolver().OptimizeAllTargets(context.Background(), domain.DefaultScenario(), domain.PathwayBAU)
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatMultiDimensional(md)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS: ALL PARAMETERS")
	assert.Contains(t, out, "$72.00/t")
	assert.Contains(t, out, "6.94%")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Liability reaches $18.9B")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "⚠ Did not converge", tf.formatStatus(false))
	assert.Equal(t, "carbon_p...", tf.truncate("carbon_price_target", 11))
	assert.Equal(t, "short", tf.truncate("short", 11))

	req := OptimizationRequest{Goal: GoalMatchLiability, Constraints: Constraints{TargetLiability: dec(20)}}
	assert.Equal(t, "liability of $20.0B", tf.describeGoal(req))
}

func TestJSONFormatter(t *testing.T) {
	result := solvedPrice(t)

	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(result)
		require.NoError(t, err)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, true, decoded["success"])
		assert.Equal(t, "18.9", decoded["achieved_liability"])
		assert.Contains(t, decoded, "optimal_carbon_price")
		assert.NotContains(t, decoded, "optimal_discount_rate")
	}

	md := &MultiDimensionalResult{Results: []OptimizationResult{*result}, Recommendations: []string{"x"}}
	out, err := (&JSONFormatter{}).FormatMultiDimensional(md)
	require.NoError(t, err)
	assert.Contains(t, out, `"recommendations":["x"]`)
}
