package registry

import (
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// TransitionFundBillions is the size of the transition finance facility the
// payback schedule tracks.
const TransitionFundBillions = 15

var payback = []struct {
	year       int
	cumulative int64
}{
	{2026, -15}, {2028, -12}, {2030, -8}, {2032, -3},
	{2034, 5}, {2036, 15}, {2038, 28}, {2040, 45},
}

// PaybackSchedule returns the fund's cumulative net position, 2026 to 2040.
func PaybackSchedule() []domain.PaybackPoint {
	out := make([]domain.PaybackPoint, len(payback))
	for i, p := range payback {
		out[i] = domain.PaybackPoint{Year: p.year, Cumulative: decimal.NewFromInt(p.cumulative)}
	}
	return out
}

// PaybackYear returns the first scheduled year the fund is back in the black.
func PaybackYear() (int, bool) {
	for _, p := range payback {
		if p.cumulative >= 0 {
			return p.year, true
		}
	}
	return 0, false
}

// StakeholderViews returns every perspective. liability is the scenario
// estimate in USD billions, shown as Industry's compliance cost.
func StakeholderViews(liability decimal.Decimal) []domain.StakeholderView {
	views := make([]domain.StakeholderView, 0, len(domain.Stakeholders()))
	for _, s := range domain.Stakeholders() {
		v, _ := StakeholderView(s, liability)
		views = append(views, v)
	}
	return views
}

// StakeholderView returns one perspective's metrics and recommended actions.
func StakeholderView(s domain.Stakeholder, liability decimal.Decimal) (domain.StakeholderView, error) {
	switch s {
	case domain.StakeholderGovernment:
		return domain.StakeholderView{
			Stakeholder: s,
			Icon:        "🏛️",
			Metrics: []domain.StakeholderMetric{
				{Label: "Fiscal Exposure", Value: "$17.7B", Tone: domain.ToneBad},
				{Label: "Auction Revenue", Value: "$85-100B", Tone: domain.ToneGood},
				{Label: "Net Position", Value: "$76-92B", Tone: domain.ToneGood},
				{Label: "Jobs at Risk", Value: "~25,000", Tone: domain.ToneBad},
			},
			Actions: []string{
				"Launch Hybrid ETS by 2028 with $30/t floor",
				"Establish $15B Transition Finance Facility",
				"Strategic review of 7 critical-age PSU facilities",
				"Implement CBAM-compatible pricing by 2032",
			},
		}, nil
	case domain.StakeholderIndustry:
		return domain.StakeholderView{
			Stakeholder: s,
			Icon:        "🏭",
			Metrics: []domain.StakeholderMetric{
				{Label: "Compliance Cost", Value: "$" + liability.StringFixed(1) + "B", Tone: domain.ToneBad},
				{Label: "CCUS Investment", Value: "$8-12B", Tone: domain.ToneNeutral},
				{Label: "Efficiency Potential", Value: "15-20%", Tone: domain.ToneGood},
				{Label: "Stranded Risk", Value: "$63.7B", Tone: domain.ToneBad},
			},
			Actions: []string{
				"Lock in carbon price contracts early",
				"Accelerate efficiency investments (30% subsidy available)",
				"Form industry CCUS consortium",
				"Develop Green Hydrogen capabilities",
			},
		}, nil
	case domain.StakeholderInvestor:
		return domain.StakeholderView{
			Stakeholder: s,
			Icon:        "📈",
			Metrics: []domain.StakeholderMetric{
				{Label: "Carbon Beta", Value: "1.8x", Tone: domain.ToneBad},
				{Label: "Investment Need", Value: "$25-30B", Tone: domain.ToneNeutral},
				{Label: "Green Bond Opp.", Value: "$10B+", Tone: domain.ToneGood},
				{Label: "PSU Discount", Value: "15-25%", Tone: domain.ToneBad},
			},
			Actions: []string{
				"Overweight modern refineries (Jamnagar SEZ, Paradip, Bina)",
				"Underweight facilities >50 years old",
				"Monitor BPCL privatization for entry",
				"Consider Green H₂ pure-play investments",
			},
		}, nil
	}
	return domain.StakeholderView{}, fmt.Errorf("%w %q", domain.ErrInvalidStakeholder, s)
}
