package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSensitivityRangePct is the default sweep half-width in percent.
const DefaultSensitivityRangePct = 30.0

// sensitivitySteps is the number of evenly spaced offsets in a sweep,
// endpoints included.
const sensitivitySteps = 7

// SensitivityAnalyzer performs one-factor sweeps over the liability formula
type SensitivityAnalyzer struct {
	logger Logger
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs NopLogger.
func (sa *SensitivityAnalyzer) SetLogger(l Logger) {
	sa.logger = orNop(l)
}

// Analyze sweeps factor across seven offsets from -rangePct to +rangePct
// percent and returns one row per offset in ascending order. Other scenario
// fields are held fixed. A negative rangePct is treated as its magnitude.
func (sa *SensitivityAnalyzer) Analyze(scenario domain.Scenario, factor domain.SensitivityFactor, rangePct float64) ([]domain.SensitivityRow, error) {
	if factor != domain.FactorCarbonPrice && factor != domain.FactorDiscountRate {
		return nil, &domain.InvalidFactorError{Name: string(factor)}
	}
	if err := domain.CheckFinite("sensitivity range", rangePct); err != nil {
		return nil, err
	}

	base := baseFactorValue(scenario, factor)
	offsets := generateOffsets(math.Abs(rangePct))
	rows := make([]domain.SensitivityRow, 0, len(offsets))

	for _, offset := range offsets {
		value := base.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(offset).Div(hundred)))
		varied := modifyScenarioFactor(scenario, factor, value)

		liability, err := ScenarioLiability(varied)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s=%s: %w", factor, value, err)
		}

		rows = append(rows, domain.SensitivityRow{
			ChangePct: offset,
			Factor:    factor,
			Value:     value,
			Liability: liability,
		})
	}

	sa.logger.Debugf("sensitivity %s over ±%.1f%%: %d rows", factor, rangePct, len(rows))
	return rows, nil
}

// Tornado sweeps both factors and reports the liability at each range
// endpoint, widest swing first.
func (sa *SensitivityAnalyzer) Tornado(scenario domain.Scenario, rangePct float64) ([]domain.TornadoBar, error) {
	factors := []domain.SensitivityFactor{domain.FactorCarbonPrice, domain.FactorDiscountRate}
	bars := make([]domain.TornadoBar, 0, len(factors))

	for _, factor := range factors {
		rows, err := sa.Analyze(scenario, factor, rangePct)
		if err != nil {
			return nil, err
		}
		low, high := rows[0].Liability, rows[len(rows)-1].Liability
		bars = append(bars, domain.TornadoBar{
			Factor:        factor,
			LowLiability:  low,
			HighLiability: high,
			Swing:         high.Sub(low).Abs(),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Swing.GreaterThan(bars[j].Swing)
	})
	return bars, nil
}

// generateOffsets returns the sweep offsets. Computing each as a multiple of
// rangePct/3 keeps the centre offset exactly zero.
func generateOffsets(rangePct float64) []float64 {
	half := sensitivitySteps / 2
	offsets := make([]float64, sensitivitySteps)
	for i := range offsets {
		offsets[i] = rangePct * float64(i-half) / float64(half)
	}
	return offsets
}

func baseFactorValue(s domain.Scenario, factor domain.SensitivityFactor) decimal.Decimal {
	if factor == domain.FactorDiscountRate {
		return s.DiscountRate()
	}
	return s.CarbonPrice()
}

func modifyScenarioFactor(s domain.Scenario, factor domain.SensitivityFactor, value decimal.Decimal) domain.Scenario {
	if factor == domain.FactorDiscountRate {
		return s.WithDiscountRate(value)
	}
	return s.WithCarbonPrice(value)
}
