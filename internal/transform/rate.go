package transform

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// SetDiscountRate replaces the discount rate (percent).
type SetDiscountRate struct {
	Rate decimal.Decimal
}

func (t *SetDiscountRate) Name() string { return "set_rate" }

func (t *SetDiscountRate) Description() string {
	return fmt.Sprintf("Set discount rate to %s%%", t.Rate.String())
}

func (t *SetDiscountRate) Validate(base domain.Scenario) error {
	if !t.Rate.IsPositive() {
		return NewTransformError(t.Name(), "validate", "rate must be positive",
			&domain.DomainError{Field: "discount rate", Value: t.Rate.String()})
	}
	return nil
}

func (t *SetDiscountRate) Apply(base domain.Scenario) (domain.Scenario, error) {
	return base.WithDiscountRate(t.Rate), nil
}

// AdjustDiscountRate adds percentage points to the discount rate. The result
// must stay positive.
type AdjustDiscountRate struct {
	Points decimal.Decimal
}

func (t *AdjustDiscountRate) Name() string { return "adjust_rate" }

func (t *AdjustDiscountRate) Description() string {
	if t.Points.IsNegative() {
		return fmt.Sprintf("Lower discount rate by %s points", t.Points.Neg().String())
	}
	return fmt.Sprintf("Raise discount rate by %s points", t.Points.String())
}

func (t *AdjustDiscountRate) Validate(base domain.Scenario) error {
	next := base.DiscountRate().Add(t.Points)
	if !next.IsPositive() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("rate %s%% adjusted by %s points is not positive", base.DiscountRate(), t.Points),
			&domain.DomainError{Field: "discount rate", Value: next.String()})
	}
	return nil
}

func (t *AdjustDiscountRate) Apply(base domain.Scenario) (domain.Scenario, error) {
	return base.WithDiscountRate(base.DiscountRate().Add(t.Points)), nil
}
