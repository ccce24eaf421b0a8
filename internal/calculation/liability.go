package calculation

import (
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// BaseLiabilityBillions is the portfolio liability in USD billions at the
// calibration point: $50/t carbon price, 10% discount rate, Aggressive pathway.
const BaseLiabilityBillions = 13.1

var (
	baseLiability  = decimal.NewFromFloat(BaseLiabilityBillions)
	referencePrice = decimal.NewFromInt(50)
	referenceRate  = decimal.NewFromInt(10)
	hundred        = decimal.NewFromInt(100)
)

// BaseLiability returns the calibration liability as a decimal.
func BaseLiability() decimal.Decimal { return baseLiability }

// ComputeLiability evaluates
//
//	13.1 * (price/50) * multiplier(pathway) * (10/rate)
//
// rounded to one decimal place. The model is linear in price and inversely
// proportional to rate; there is no time-series discounting. rate must be
// positive (ErrDomain otherwise). price is not validated.
func ComputeLiability(price, rate decimal.Decimal, pathway domain.Pathway) (decimal.Decimal, error) {
	raw, err := RawLiability(price, rate, pathway)
	if err != nil {
		return decimal.Zero, err
	}
	return raw.Round(1), nil
}

// ScenarioLiability is ComputeLiability over a scenario's fields.
func ScenarioLiability(s domain.Scenario) (decimal.Decimal, error) {
	return ComputeLiability(s.CarbonPrice(), s.DiscountRate(), s.Pathway())
}

// RawLiability is ComputeLiability without the final rounding. Solvers that
// search over price or rate need the continuous value.
func RawLiability(price, rate decimal.Decimal, pathway domain.Pathway) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, &domain.DomainError{Field: "discount rate", Value: rate.String()}
	}
	mult, ok := domain.PathwayMultiplier(pathway)
	if !ok {
		return decimal.Zero, &domain.InvalidPathwayError{Name: string(pathway)}
	}
	return baseLiability.
		Mul(price.Div(referencePrice)).
		Mul(mult).
		Mul(referenceRate.Div(rate)), nil
}

// ExcessOverBasePct is the whole-percent excess of liability over the base
// case, rounded half to even.
func ExcessOverBasePct(liability decimal.Decimal) decimal.Decimal {
	return liability.Div(baseLiability).Sub(decimal.NewFromInt(1)).Mul(hundred).RoundBank(0)
}
