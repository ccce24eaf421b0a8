package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many scenarios are evaluated at once.
const DefaultConcurrency = 4

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CarbonEngine
	MetricsCalculator *MetricsCalculator
	Concurrency       int
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CarbonEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		Concurrency:       DefaultConcurrency,
	}
}

// ComparePathways evaluates base on its own pathway and on every other
// pathway, holding price and rate fixed.
func (ce *CompareEngine) ComparePathways(ctx context.Context, base domain.Scenario) (*ComparisonSet, error) {
	// Base pathway first, then every alternative
	named := []config.NamedScenario{{Name: string(base.Pathway()), Scenario: base}}
	for _, p := range domain.Pathways() {
		if p == base.Pathway() {
			continue
		}
		alt, err := base.WithPathway(p)
		if err != nil {
			return nil, err
		}
		named = append(named, config.NamedScenario{Name: string(p), Scenario: alt})
	}
	return ce.CompareScenarios(ctx, named, named[0].Name)
}

// CompareScenarios evaluates named scenarios concurrently and compares each
// against the one called baseScenarioName.
func (ce *CompareEngine) CompareScenarios(ctx context.Context, scenarios []config.NamedScenario, baseScenarioName string) (*ComparisonSet, error) {
	// Find base scenario
	baseIndex := -1
	for i := range scenarios {
		if scenarios[i].Name == baseScenarioName {
			baseIndex = i
			break
		}
	}
	if baseIndex < 0 {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}

	// Calculate all scenarios, bounded by Concurrency
	results := make([]ComparisonResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	if ce.Concurrency > 0 {
		g.SetLimit(ce.Concurrency)
	}
	for i := range scenarios {
		g.Go(func() error {
			result, err := ce.evaluate(gctx, scenarios[i])
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", scenarios[i].Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Metrics relative to the base
	baseResult := results[baseIndex]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for i, r := range results {
		if i == baseIndex {
			continue
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	// Create comparison set
	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	// Generate recommendations
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Infof("compared %d scenarios against %s", len(alternatives), baseScenarioName)
	return compSet, nil
}

// evaluate runs one scenario through the liability formula, a Monte Carlo
// run and the insight rules. Every call draws from its own generator.
func (ce *CompareEngine) evaluate(ctx context.Context, ns config.NamedScenario) (ComparisonResult, error) {
	liability, err := calculation.ScenarioLiability(ns.Scenario)
	if err != nil {
		return ComparisonResult{}, err
	}
	sim, err := ce.CalcEngine.MonteCarlo.Run(ctx, ns.Scenario)
	if err != nil {
		return ComparisonResult{}, err
	}
	insights, err := ce.CalcEngine.GenerateInsights(ns.Scenario)
	if err != nil {
		return ComparisonResult{}, err
	}

	result := ce.MetricsCalculator.CalculateMetrics(ns.Name, ns.Scenario, liability, sim, insights)
	result.Description = ns.Description
	return result, nil
}
