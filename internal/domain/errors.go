package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPathway is returned when a pathway name is not in the pathway table.
	ErrInvalidPathway = errors.New("invalid pathway")
	// ErrDomain is returned when an input falls outside the formula's domain
	// (discount rate <= 0, or a NaN or infinite number).
	ErrDomain = errors.New("value outside formula domain")
	// ErrInvalidFactor is returned when a sensitivity factor is not carbonPrice or discountRate.
	ErrInvalidFactor = errors.New("invalid sensitivity factor")
	// ErrInvalidSimulationCount is returned when a Monte Carlo draw count is below one or above the engine maximum.
	ErrInvalidSimulationCount = errors.New("simulation count out of range")
	// ErrInvalidStakeholder is returned for a perspective other than Government, Industry or Investor.
	ErrInvalidStakeholder = errors.New("invalid stakeholder")
)

// InvalidPathwayError carries the rejected pathway name.
type InvalidPathwayError struct {
	Name string
}

func (e *InvalidPathwayError) Error() string {
	return fmt.Sprintf("invalid pathway %q: choose from %s", e.Name, strings.Join(PathwayNames(), ", "))
}

func (e *InvalidPathwayError) Unwrap() error { return ErrInvalidPathway }

// DomainError reports a formula input outside its valid range. An empty
// Reason reads "must be positive".
type DomainError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DomainError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("%s %s, got %s", e.Field, reason, e.Value)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// InvalidFactorError carries the rejected sensitivity factor name.
type InvalidFactorError struct {
	Name string
}

func (e *InvalidFactorError) Error() string {
	return fmt.Sprintf("invalid sensitivity factor %q: choose from %s, %s", e.Name, FactorCarbonPrice, FactorDiscountRate)
}

func (e *InvalidFactorError) Unwrap() error { return ErrInvalidFactor }

// FiniteDecimal converts v to a decimal, rejecting NaN and infinities with a
// *DomainError naming field.
func FiniteDecimal(field string, v float64) (decimal.Decimal, error) {
	if err := CheckFinite(field, v); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(v), nil
}

// CheckFinite returns a *DomainError when v is NaN or infinite.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DomainError{Field: field, Value: fmt.Sprintf("%g", v), Reason: "must be a finite number"}
	}
	return nil
}
