package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stakeholder is a reader of the liability numbers with its own metrics.
type Stakeholder string

const (
	StakeholderGovernment Stakeholder = "Government"
	StakeholderIndustry   Stakeholder = "Industry"
	StakeholderInvestor   Stakeholder = "Investor"
)

// Stakeholders returns the perspectives in display order.
func Stakeholders() []Stakeholder {
	return []Stakeholder{StakeholderGovernment, StakeholderIndustry, StakeholderInvestor}
}

// ParseStakeholder matches a perspective name case-insensitively.
func ParseStakeholder(name string) (Stakeholder, error) {
	for _, s := range Stakeholders() {
		if strings.EqualFold(strings.TrimSpace(name), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q: choose from Government, Industry, Investor", ErrInvalidStakeholder, name)
}

// MetricTone says whether a higher figure is good or bad news for the reader.
type MetricTone string

const (
	ToneGood    MetricTone = "good"
	ToneBad     MetricTone = "bad"
	ToneNeutral MetricTone = "neutral"
)

// StakeholderMetric is one headline figure. Values are display strings
// because most are ranges ("$85-100B").
type StakeholderMetric struct {
	Label string     `json:"label"`
	Value string     `json:"value"`
	Tone  MetricTone `json:"tone"`
}

// StakeholderView is the metric set and recommended actions for one perspective.
type StakeholderView struct {
	Stakeholder Stakeholder         `json:"stakeholder"`
	Icon        string              `json:"icon"`
	Metrics     []StakeholderMetric `json:"metrics"`
	Actions     []string            `json:"actions"`
}

// PaybackPoint is the cumulative net return of the transition fund in USD
// billions at a given year.
type PaybackPoint struct {
	Year       int             `json:"year"`
	Cumulative decimal.Decimal `json:"cumulative"`
}
