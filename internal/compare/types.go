package compare

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string          `json:"scenarioName"`
	Description  string          `json:"description,omitempty"`
	Scenario     domain.Scenario `json:"scenario"`

	// Key Metrics
	Liability  decimal.Decimal `json:"liability"`
	P5         decimal.Decimal `json:"p5"`
	P50        decimal.Decimal `json:"p50"`
	P95        decimal.Decimal `json:"p95"`
	Mean       decimal.Decimal `json:"mean"`
	AlertCount int             `json:"alertCount"`
	TopInsight string          `json:"topInsight,omitempty"`

	// Comparison to Base
	LiabilityDiffFromBase decimal.Decimal `json:"liabilityDiffFromBase"`
	LiabilityPctFromBase  decimal.Decimal `json:"liabilityPctFromBase"`
}

// RangeWidth is the width of the 90% Monte Carlo interval.
func (r *ComparisonResult) RangeWidth() decimal.Decimal {
	return r.P95.Sub(r.P5)
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from engine output
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds a comparison row from one scenario evaluation
func (mc *MetricsCalculator) CalculateMetrics(name string, scenario domain.Scenario, liability decimal.Decimal, sim *domain.MonteCarloResult, insights []domain.Insight) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Scenario:     scenario,
		Liability:    liability,
		AlertCount:   calculation.AlertCount(insights),
	}
	if sim != nil {
		result.P5 = sim.P5
		result.P50 = sim.P50
		result.P95 = sim.P95
		result.Mean = sim.Mean
	}
	if top, ok := calculation.TopInsight(insights); ok {
		result.TopInsight = top.Title
	}
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.LiabilityDiffFromBase = scenario.Liability.Sub(base.Liability)

	if !base.Liability.IsZero() {
		scenario.LiabilityPctFromBase = scenario.LiabilityDiffFromBase.
			Div(base.Liability).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest liability
	lowest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].Liability.LessThan(lowest.Liability) {
			lowest = &compSet.AlternativeResults[i]
		}
	}
	if lowest != base {
		savings := base.Liability.Sub(lowest.Liability)
		recommendations = append(recommendations,
			"Lowest Liability: "+lowest.ScenarioName+" saves $"+savings.StringFixed(1)+
				"B against "+base.ScenarioName)
	}

	// Highest exposure
	highest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].Liability.GreaterThan(highest.Liability) {
			highest = &compSet.AlternativeResults[i]
		}
	}
	if highest != base {
		extra := highest.Liability.Sub(base.Liability)
		recommendations = append(recommendations,
			"Highest Exposure: "+highest.ScenarioName+" adds $"+extra.StringFixed(1)+
				"B of liability")
	}

	// Narrowest uncertainty band
	narrowest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].RangeWidth().LessThan(narrowest.RangeWidth()) {
			narrowest = &compSet.AlternativeResults[i]
		}
	}
	if narrowest != base {
		recommendations = append(recommendations,
			"Narrowest Range: "+narrowest.ScenarioName+" has the tightest 90% range "+
				fmt.Sprintf("($%s-%sB)", narrowest.P5.StringFixed(1), narrowest.P95.StringFixed(1)))
	}

	return recommendations
}
