package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/shopspring/decimal"
)

// CarbonEngine orchestrates the liability formula, Monte Carlo engine,
// sensitivity analyzer, insight rules and facility registry behind the
// library contract consumed by the CLI, API and TUI.
type CarbonEngine struct {
	MonteCarlo  *MonteCarloEngine
	Sensitivity *SensitivityAnalyzer
	Insights    *InsightEngine
	Logger      Logger
}

// NewCarbonEngine creates an engine with unseeded sampling and default rules
func NewCarbonEngine() *CarbonEngine {
	return NewCarbonEngineWithConfig(DefaultMonteCarloConfig())
}

// NewCarbonEngineWithConfig creates an engine with a custom Monte Carlo configuration
func NewCarbonEngineWithConfig(cfg MonteCarloConfig) *CarbonEngine {
	return &CarbonEngine{
		MonteCarlo:  NewMonteCarloEngineWithConfig(cfg),
		Sensitivity: NewSensitivityAnalyzer(),
		Insights:    NewInsightEngine(),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger on the engine and every component. nil installs NopLogger.
func (ce *CarbonEngine) SetLogger(l Logger) {
	ce.Logger = orNop(l)
	ce.MonteCarlo.SetLogger(ce.Logger)
	ce.Sensitivity.SetLogger(ce.Logger)
	ce.Insights.SetLogger(ce.Logger)
}

// ComputeLiability evaluates the liability formula for a named pathway.
func (ce *CarbonEngine) ComputeLiability(price, rate float64, pathway string) (decimal.Decimal, error) {
	p, err := domain.ParsePathway(pathway)
	if err != nil {
		return decimal.Zero, err
	}
	// Convert inputs; NaN and infinities are domain errors
	dp, err := domain.FiniteDecimal("carbon price", price)
	if err != nil {
		return decimal.Zero, err
	}
	dr, err := domain.FiniteDecimal("discount rate", rate)
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeLiability(dp, dr, p)
}

// RunMonteCarlo simulates the scenario with explicit draw count and variances.
func (ce *CarbonEngine) RunMonteCarlo(ctx context.Context, scenario domain.Scenario, n int, priceVariance, emissionVariance float64) (*domain.MonteCarloResult, error) {
	return ce.MonteCarlo.Simulate(ctx, scenario, n, priceVariance, emissionVariance)
}

// RunSensitivity sweeps a named factor ("carbonPrice" or "discountRate").
func (ce *CarbonEngine) RunSensitivity(scenario domain.Scenario, factor string, rangePct float64) ([]domain.SensitivityRow, error) {
	f, err := domain.ParseSensitivityFactor(factor)
	if err != nil {
		return nil, err
	}
	return ce.Sensitivity.Analyze(scenario, f, rangePct)
}

// GenerateInsights evaluates the insight rules for the scenario.
func (ce *CarbonEngine) GenerateInsights(scenario domain.Scenario) ([]domain.Insight, error) {
	return ce.Insights.Generate(scenario)
}

// ListFacilities returns registry facilities, optionally filtered by
// ownership type and risk grade.
func (ce *CarbonEngine) ListFacilities(ownership domain.Ownership, risk domain.RiskGrade) []domain.FacilityRecord {
	return registry.Filter(registry.Query{Ownership: ownership, Risk: risk})
}

// StakeholderViews returns the Government, Industry and Investor perspectives
// on scenario. Industry's compliance cost is the scenario liability.
func (ce *CarbonEngine) StakeholderViews(scenario domain.Scenario) ([]domain.StakeholderView, error) {
	liability, err := ScenarioLiability(scenario)
	if err != nil {
		return nil, err
	}
	return registry.StakeholderViews(liability), nil
}

// Summarize combines the liability, a default-configured Monte Carlo run and
// registry counts. High-risk facilities are those graded B or BB.
func (ce *CarbonEngine) Summarize(ctx context.Context, scenario domain.Scenario) (*domain.Summary, error) {
	liability, err := ScenarioLiability(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to compute liability: %w", err)
	}

	mc, err := ce.MonteCarlo.Run(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to run monte carlo: %w", err)
	}

	ce.Logger.Infof("summary %s: liability=$%sB 90%% range=$%s-%sB", scenario, liability, mc.P5, mc.P95)

	return NewSummary(scenario, liability, mc), nil
}

// NewSummary assembles a Summary from results already computed for scenario.
func NewSummary(scenario domain.Scenario, liability decimal.Decimal, mc *domain.MonteCarloResult) *domain.Summary {
	return &domain.Summary{
		Scenario:  scenario,
		Liability: liability,
		MonteCarlo: domain.MonteCarloBrief{
			P5:   mc.P5,
			P50:  mc.P50,
			P95:  mc.P95,
			Mean: mc.Mean,
		},
		FacilityCounts: registry.Counts(),
	}
}
