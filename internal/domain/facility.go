package domain

import (
	"github.com/shopspring/decimal"
)

// Ownership distinguishes public sector undertakings from private operators.
type Ownership string

const (
	OwnershipPSU     Ownership = "PSU"
	OwnershipPrivate Ownership = "Private"
)

// RiskGrade is a credit-style rating, AAA best to B worst.
type RiskGrade string

const (
	RiskAAA RiskGrade = "AAA"
	RiskA   RiskGrade = "A"
	RiskBBB RiskGrade = "BBB"
	RiskBB  RiskGrade = "BB"
	RiskB   RiskGrade = "B"
)

// IsHighRisk reports whether the grade is B or BB.
func (g RiskGrade) IsHighRisk() bool {
	return g == RiskB || g == RiskBB
}

// FacilityRecord is one refinery in the reference dataset.
type FacilityRecord struct {
	Name      string          `json:"name" yaml:"name"`
	Operator  string          `json:"operator" yaml:"operator"`
	Ownership Ownership       `json:"type" yaml:"type"`
	Capacity  decimal.Decimal `json:"capacity" yaml:"capacity"` // MMTPA
	Age       int             `json:"age" yaml:"age"`           // years
	Liability decimal.Decimal `json:"liability" yaml:"liability"`
	Risk      RiskGrade       `json:"risk" yaml:"risk"`
	State     string          `json:"state" yaml:"state"`
	Latitude  float64         `json:"lat" yaml:"lat"`
	Longitude float64         `json:"lon" yaml:"lon"`
}

// MarketPrice is a reference carbon price from an emissions trading market.
type MarketPrice struct {
	Market   string          `json:"market"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Region   string          `json:"region"`
}
