package domain

import (
	"github.com/shopspring/decimal"
)

// MonteCarloResult is the summary of one simulation run. Percentiles, mean
// and standard deviation are rounded to one decimal; Samples holds the raw
// draws sorted ascending.
type MonteCarloResult struct {
	Simulations int             `json:"simulations"`
	P5          decimal.Decimal `json:"p5"`
	P25         decimal.Decimal `json:"p25"`
	P50         decimal.Decimal `json:"p50"`
	P75         decimal.Decimal `json:"p75"`
	P95         decimal.Decimal `json:"p95"`
	Mean        decimal.Decimal `json:"mean"`
	Std         decimal.Decimal `json:"std"`
	Samples     []float64       `json:"samples,omitempty"`
}

// HistogramBin is one bucket of a sample histogram. Upper is exclusive except
// for the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// MaxHistogramBins caps the bin count Histogram will allocate.
const MaxHistogramBins = 200

// Histogram buckets the samples into equal-width bins between the minimum
// and maximum draw. Bin counts above MaxHistogramBins are clamped.
func (r *MonteCarloResult) Histogram(bins int) []HistogramBin {
	if r == nil || len(r.Samples) == 0 || bins < 1 {
		return nil
	}
	bins = min(bins, MaxHistogramBins)
	lo, hi := r.Samples[0], r.Samples[len(r.Samples)-1]
	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, v := range r.Samples {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		out[idx].Count++
	}
	return out
}

// SensitivityFactor names the scenario input varied by a sensitivity sweep.
type SensitivityFactor string

const (
	FactorCarbonPrice  SensitivityFactor = "carbonPrice"
	FactorDiscountRate SensitivityFactor = "discountRate"
)

// ParseSensitivityFactor accepts the camelCase names and their snake_case forms.
func ParseSensitivityFactor(name string) (SensitivityFactor, error) {
	switch name {
	case string(FactorCarbonPrice), "carbon_price":
		return FactorCarbonPrice, nil
	case string(FactorDiscountRate), "discount_rate":
		return FactorDiscountRate, nil
	default:
		return "", &InvalidFactorError{Name: name}
	}
}

// SensitivityRow is one point of a sensitivity sweep.
type SensitivityRow struct {
	ChangePct float64           `json:"changePct"`
	Factor    SensitivityFactor `json:"factor"`
	Value     decimal.Decimal   `json:"value"`
	Liability decimal.Decimal   `json:"liability"`
}

// TornadoBar is the liability swing produced by moving one factor across its range.
type TornadoBar struct {
	Factor        SensitivityFactor `json:"factor"`
	LowLiability  decimal.Decimal   `json:"lowLiability"`
	HighLiability decimal.Decimal   `json:"highLiability"`
	Swing         decimal.Decimal   `json:"swing"`
}

// MonteCarloBrief is the subset of Monte Carlo statistics carried by a Summary.
type MonteCarloBrief struct {
	P5   decimal.Decimal `json:"p5"`
	P50  decimal.Decimal `json:"p50"`
	P95  decimal.Decimal `json:"p95"`
	Mean decimal.Decimal `json:"mean"`
}

// FacilityCounts aggregates the facility registry.
type FacilityCounts struct {
	Total    int               `json:"total"`
	ByType   map[Ownership]int `json:"byType"`
	HighRisk int               `json:"highRisk"`
}

// Summary combines liability, simulation and registry figures for one scenario.
type Summary struct {
	Scenario       Scenario        `json:"scenario"`
	Liability      decimal.Decimal `json:"liability"`
	MonteCarlo     MonteCarloBrief `json:"monteCarlo"`
	FacilityCounts FacilityCounts  `json:"facilityCounts"`
}
