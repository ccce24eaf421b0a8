package transform

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetCarbonPrice replaces the carbon price (USD per tonne).
type SetCarbonPrice struct {
	Price decimal.Decimal
}

func (t *SetCarbonPrice) Name() string { return "set_price" }

func (t *SetCarbonPrice) Description() string {
	return fmt.Sprintf("Set carbon price to $%s/t", t.Price.String())
}

func (t *SetCarbonPrice) Validate(base domain.Scenario) error {
	if t.Price.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("price cannot be negative, got %s", t.Price), nil)
	}
	return nil
}

func (t *SetCarbonPrice) Apply(base domain.Scenario) (domain.Scenario, error) {
	return base.WithCarbonPrice(t.Price), nil
}

// ScaleCarbonPrice moves the carbon price by a percentage, e.g. 50 for +50%.
type ScaleCarbonPrice struct {
	Percent decimal.Decimal
}

func (t *ScaleCarbonPrice) Name() string { return "scale_price" }

func (t *ScaleCarbonPrice) Description() string {
	sign := ""
	if t.Percent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Change carbon price by %s%s%%", sign, t.Percent.String())
}

func (t *ScaleCarbonPrice) Validate(base domain.Scenario) error {
	if t.Percent.LessThan(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("percent cannot be below -100, got %s", t.Percent), nil)
	}
	return nil
}

func (t *ScaleCarbonPrice) Apply(base domain.Scenario) (domain.Scenario, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(hundred))
	return base.WithCarbonPrice(base.CarbonPrice().Mul(factor)), nil
}

// MatchMarketPrice sets the carbon price to a reference market's price. The
// market's local currency is taken at par with USD.
type MatchMarketPrice struct {
	Market string
}

func (t *MatchMarketPrice) Name() string { return "match_market" }

func (t *MatchMarketPrice) Description() string {
	return fmt.Sprintf("Set carbon price to the %s reference price", t.Market)
}

func (t *MatchMarketPrice) Validate(base domain.Scenario) error {
	if _, ok := registry.MarketPrice(t.Market); !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown market %q", t.Market), nil)
	}
	return nil
}

func (t *MatchMarketPrice) Apply(base domain.Scenario) (domain.Scenario, error) {
	m, ok := registry.MarketPrice(t.Market)
	if !ok {
		return domain.Scenario{}, NewTransformError(t.Name(), "apply", fmt.Sprintf("unknown market %q", t.Market), nil)
	}
	return base.WithCarbonPrice(m.Price), nil
}
