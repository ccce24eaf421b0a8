package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Default scenario parameters: the calibration point of the liability model.
const (
	DefaultCarbonPrice  = 50.0
	DefaultDiscountRate = 10.0
	DefaultPathway      = PathwayAggressive
)

// Scenario is an immutable bundle of policy parameters. Carbon price is in
// USD per tonne CO2, discount rate in percent. Construction checks the
// pathway and that both numbers are finite; the liability formulas document
// their own preconditions on price and rate.
type Scenario struct {
	carbonPrice  decimal.Decimal
	discountRate decimal.Decimal
	pathway      Pathway
}

// NewScenario builds a scenario, failing with ErrInvalidPathway for unknown
// pathways and ErrDomain for a NaN or infinite price or rate.
func NewScenario(carbonPrice, discountRate float64, pathway string) (Scenario, error) {
	price, err := FiniteDecimal("carbon price", carbonPrice)
	if err != nil {
		return Scenario{}, err
	}
	rate, err := FiniteDecimal("discount rate", discountRate)
	if err != nil {
		return Scenario{}, err
	}
	return NewScenarioDecimal(price, rate, pathway)
}

// NewScenarioDecimal is NewScenario for callers that already hold decimals.
func NewScenarioDecimal(carbonPrice, discountRate decimal.Decimal, pathway string) (Scenario, error) {
	p, err := ParsePathway(pathway)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{carbonPrice: carbonPrice, discountRate: discountRate, pathway: p}, nil
}

// DefaultScenario returns the $50/t, 10%, Aggressive base case.
func DefaultScenario() Scenario {
	return Scenario{
		carbonPrice:  decimal.NewFromFloat(DefaultCarbonPrice),
		discountRate: decimal.NewFromFloat(DefaultDiscountRate),
		pathway:      DefaultPathway,
	}
}

func (s Scenario) CarbonPrice() decimal.Decimal  { return s.carbonPrice }
func (s Scenario) DiscountRate() decimal.Decimal { return s.discountRate }
func (s Scenario) Pathway() Pathway              { return s.pathway }

// WithCarbonPrice returns a copy of s with a different carbon price.
func (s Scenario) WithCarbonPrice(price decimal.Decimal) Scenario {
	s.carbonPrice = price
	return s
}

// WithDiscountRate returns a copy of s with a different discount rate.
func (s Scenario) WithDiscountRate(rate decimal.Decimal) Scenario {
	s.discountRate = rate
	return s
}

// WithPathway returns a copy of s on another pathway.
func (s Scenario) WithPathway(p Pathway) (Scenario, error) {
	if !p.Valid() {
		return Scenario{}, &InvalidPathwayError{Name: string(p)}
	}
	s.pathway = p
	return s, nil
}

// IsZero reports whether s was never constructed.
func (s Scenario) IsZero() bool { return s.pathway == "" }

func (s Scenario) String() string {
	return fmt.Sprintf("Scenario(price=$%s/t, rate=%s%%, pathway=%s)",
		s.carbonPrice.String(), s.discountRate.String(), s.pathway)
}

// ScenarioView is the serializable form of a Scenario.
type ScenarioView struct {
	CarbonPrice  decimal.Decimal `json:"carbonPrice" yaml:"carbon_price"`
	DiscountRate decimal.Decimal `json:"discountRate" yaml:"discount_rate"`
	Pathway      Pathway         `json:"pathway" yaml:"pathway"`
}

// View returns the serializable form of s.
func (s Scenario) View() ScenarioView {
	return ScenarioView{CarbonPrice: s.carbonPrice, DiscountRate: s.discountRate, Pathway: s.pathway}
}

// MarshalJSON encodes the scenario through its view.
func (s Scenario) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.View())
}
