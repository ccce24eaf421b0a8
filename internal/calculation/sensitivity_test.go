package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityAnalyzer_CarbonPrice(t *testing.T) {
	sa := NewSensitivityAnalyzer()
	scenario := domain.DefaultScenario()

	rows, err := sa.Analyze(scenario, domain.FactorCarbonPrice, 30)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	wantOffsets := []float64{-30, -20, -10, 0, 10, 20, 30}
	wantValues := []string{"35", "40", "45", "50", "55", "60", "65"}
	wantLiability := []string{"9.2", "10.5", "11.8", "13.1", "14.4", "15.7", "17"}
	for i, row := range rows {
		assert.Equal(t, wantOffsets[i], row.ChangePct, "row %d offset", i)
		assert.Equal(t, wantValues[i], row.Value.String(), "row %d value", i)
		assert.Equal(t, wantLiability[i], row.Liability.String(), "row %d liability", i)
		assert.Equal(t, domain.FactorCarbonPrice, row.Factor)
	}

	base, err := ScenarioLiability(scenario)
	require.NoError(t, err)
	assert.True(t, rows[3].Liability.Equal(base), "zero offset must reproduce the formula")
}

func TestSensitivityAnalyzer_DiscountRate(t *testing.T) {
	sa := NewSensitivityAnalyzer()
	scenario := mustScenario(t, 80, 8, "BAU")

	rows, err := sa.Analyze(scenario, domain.FactorDiscountRate, 30)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].ChangePct, rows[i-1].ChangePct)
		assert.True(t, rows[i].Liability.LessThanOrEqual(rows[i-1].Liability), "liability should fall as rate rises")
	}
	assert.Equal(t, "8", rows[3].Value.String())

	base, err := ScenarioLiability(scenario)
	require.NoError(t, err)
	assert.True(t, rows[3].Liability.Equal(base))
	// the scenario itself is untouched
	assert.Equal(t, "8", scenario.DiscountRate().String())
}

func TestSensitivityAnalyzer_CustomRange(t *testing.T) {
	rows, err := NewSensitivityAnalyzer().Analyze(domain.DefaultScenario(), domain.FactorCarbonPrice, 15)
	require.NoError(t, err)

	want := []float64{-15, -10, -5, 0, 5, 10, 15}
	got := make([]float64, len(rows))
	for i, r := range rows {
		got[i] = r.ChangePct
	}
	assert.Equal(t, want, got)
}

func TestSensitivityAnalyzer_NegativeRangeStaysAscending(t *testing.T) {
	rows, err := NewSensitivityAnalyzer().Analyze(domain.DefaultScenario(), domain.FactorCarbonPrice, -30)
	require.NoError(t, err)
	assert.Equal(t, -30.0, rows[0].ChangePct)
	assert.Equal(t, 30.0, rows[6].ChangePct)
}

func TestSensitivityAnalyzer_InvalidFactor(t *testing.T) {
	_, err := NewSensitivityAnalyzer().Analyze(domain.DefaultScenario(), domain.SensitivityFactor("pathway"), 30)
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)
}

func TestSensitivityAnalyzer_NonFiniteRange(t *testing.T) {
	sa := NewSensitivityAnalyzer()
	for _, r := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := sa.Analyze(domain.DefaultScenario(), domain.FactorCarbonPrice, r)
		assert.ErrorIs(t, err, domain.ErrDomain, "range %v", r)
	}
}

func TestSensitivityAnalyzer_RateSweepHitsZero(t *testing.T) {
	_, err := NewSensitivityAnalyzer().Analyze(domain.DefaultScenario(), domain.FactorDiscountRate, 100)
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestSensitivityAnalyzer_Tornado(t *testing.T) {
	bars, err := NewSensitivityAnalyzer().Tornado(domain.DefaultScenario(), 30)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	// 10/(0.7*10) - 10/(1.3*10) is a wider swing than 1.3 - 0.7
	assert.Equal(t, domain.FactorDiscountRate, bars[0].Factor)
	assert.True(t, bars[0].Swing.GreaterThan(bars[1].Swing))
	assert.Equal(t, "7.8", bars[1].Swing.String())
}
