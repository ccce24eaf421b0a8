package registry

import (
	"sort"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// Reference prices in each market's local currency.
var marketPrices = []domain.MarketPrice{
	{Market: "EU ETS", Price: d("68.5"), Currency: "€", Region: "Europe"},
	{Market: "UK ETS", Price: d("42.1"), Currency: "£", Region: "Europe"},
	{Market: "California", Price: d("35.8"), Currency: "$", Region: "Americas"},
	{Market: "China", Price: d("9.2"), Currency: "¥", Region: "Asia"},
	{Market: "Korea", Price: d("8.5"), Currency: "₩", Region: "Asia"},
	{Market: "India (Est.)", Price: d("20.0"), Currency: "₹", Region: "Asia"},
}

// MarketPrices returns the reference carbon market prices.
func MarketPrices() []domain.MarketPrice {
	out := make([]domain.MarketPrice, len(marketPrices))
	copy(out, marketPrices)
	return out
}

// MarketPrice looks up one market by name.
func MarketPrice(market string) (domain.MarketPrice, bool) {
	for _, m := range marketPrices {
		if m.Market == market {
			return m, true
		}
	}
	return domain.MarketPrice{}, false
}

var glossary = map[string]string{
	"Carbon Liability": "Present value of future carbon costs over asset lifetime",
	"ETS":              "Emissions Trading System - market-based pollution control mechanism",
	"CBAM":             "Carbon Border Adjustment Mechanism - tariff on carbon-intensive imports",
	"Monte Carlo":      "Statistical simulation technique using random sampling",
	"Discount Rate":    "Rate used to calculate present value of future costs",
	"Stranded Assets":  "Assets that suffer devaluation due to climate policy",
	"PSU":              "Public Sector Undertaking - government-owned corporation",
	"MMTPA":            "Million Metric Tonnes Per Annum - refinery capacity unit",
	"BAU":              "Business As Usual - no additional climate action scenario",
	"CCUS":             "Carbon Capture, Utilization and Storage technology",
}

// GlossaryEntry is a term and its definition.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Glossary returns the glossary sorted by term.
func Glossary() []GlossaryEntry {
	out := make([]GlossaryEntry, 0, len(glossary))
	for term, def := range glossary {
		out = append(out, GlossaryEntry{Term: term, Definition: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}
