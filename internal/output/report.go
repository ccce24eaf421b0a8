package output

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/shopspring/decimal"
)

// Report is everything a rendered liability report shows for one scenario.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Title       string    `json:"title"`

	Summary     *domain.Summary          `json:"summary"`
	MonteCarlo  *domain.MonteCarloResult `json:"monteCarlo"`
	Histogram   []domain.HistogramBin    `json:"histogram"`
	Insights    []domain.Insight         `json:"insights"`
	Sensitivity []domain.SensitivityRow  `json:"sensitivity"`
	Tornado     []domain.TornadoBar      `json:"tornado"`

	TopFacilities []domain.FacilityRecord  `json:"topFacilities"`
	Markets       []domain.MarketPrice     `json:"markets"`
	Stakeholders  []domain.StakeholderView `json:"stakeholders"`
	Payback       []domain.PaybackPoint    `json:"payback"`
	Assumptions   []string                 `json:"assumptions"`
}

// AlertCount is the number of critical and warning insights.
func (r *Report) AlertCount() int {
	return calculation.AlertCount(r.Insights)
}

// ReportBuilder runs the engine and assembles a Report.
type ReportBuilder struct {
	Engine            *calculation.CarbonEngine
	SensitivityFactor domain.SensitivityFactor
	SensitivityRange  float64
	HistogramBins     int
	TopFacilities     int

	now   func() time.Time
	newID func() string
}

// NewReportBuilder creates a builder with the dashboard defaults: a ±30%
// carbon price sweep, 30 histogram bins and the top five facilities.
func NewReportBuilder(engine *calculation.CarbonEngine) *ReportBuilder {
	return &ReportBuilder{
		Engine:            engine,
		SensitivityFactor: domain.FactorCarbonPrice,
		SensitivityRange:  calculation.DefaultSensitivityRangePct,
		HistogramBins:     30,
		TopFacilities:     5,
		now:               time.Now,
		newID:             func() string { return uuid.NewString() },
	}
}

// Build evaluates the scenario and returns a report stamped with a fresh ID.
func (rb *ReportBuilder) Build(ctx context.Context, scenario domain.Scenario) (*Report, error) {
	// Point estimate
	liability, err := calculation.ScenarioLiability(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to compute liability: %w", err)
	}

	// Uncertainty
	mc, err := rb.Engine.MonteCarlo.Run(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to run monte carlo: %w", err)
	}

	insights, err := rb.Engine.GenerateInsights(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}

	// Sensitivity sweep and tornado
	rows, err := rb.Engine.Sensitivity.Analyze(scenario, rb.SensitivityFactor, rb.SensitivityRange)
	if err != nil {
		return nil, fmt.Errorf("failed to run sensitivity: %w", err)
	}

	tornado, err := rb.Engine.Sensitivity.Tornado(scenario, rb.SensitivityRange)
	if err != nil {
		return nil, fmt.Errorf("failed to run tornado: %w", err)
	}

	histogram := mc.Histogram(rb.HistogramBins)
	// the histogram carries the distribution; raw draws stay out of the report
	brief := *mc
	brief.Samples = nil

	return &Report{
		ID:            rb.newID(),
		GeneratedAt:   rb.now().UTC(),
		Title:         "Carbon Liability Report",
		Summary:       calculation.NewSummary(scenario, liability, mc),
		MonteCarlo:    &brief,
		Histogram:     histogram,
		Insights:      insights,
		Sensitivity:   rows,
		Tornado:       tornado,
		TopFacilities: registry.TopByLiability(rb.TopFacilities),
		Markets:       registry.MarketPrices(),
		Stakeholders:  registry.StakeholderViews(liability),
		Payback:       registry.PaybackSchedule(),
		Assumptions:   DefaultAssumptions,
	}, nil
}

// FormatBillions formats a USD billions amount, e.g. "$13.1B".
func FormatBillions(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(1) + "B"
}

// FormatPercentage formats a percentage with one decimal and a sign on increases.
func FormatPercentage(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + amount.StringFixed(1) + "%"
	}
	return amount.StringFixed(1) + "%"
}
