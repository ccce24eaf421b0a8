package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// Insight thresholds.
var (
	lowCarbonPrice      = decimal.NewFromInt(30)
	strongCarbonPrice   = decimal.NewFromInt(80)
	elevatedLiabilityAt = decimal.NewFromInt(15)
)

// InsightContext is the input every rule sees.
type InsightContext struct {
	Scenario  domain.Scenario
	Liability decimal.Decimal
}

// InsightRule is one independent predicate in the insight decision table.
// Evaluate returns false when the rule has nothing to say.
type InsightRule struct {
	Name     string
	Evaluate func(InsightContext) (domain.Insight, bool)
}

// DefaultInsightRules returns the rule table in evaluation order: price,
// pathway, structural note, elevated liability.
func DefaultInsightRules() []InsightRule {
	return []InsightRule{
		{Name: "price", Evaluate: priceInsight},
		{Name: "pathway", Evaluate: pathwayInsight},
		{Name: "structural", Evaluate: structuralInsight},
		{Name: "elevated-liability", Evaluate: elevatedLiabilityInsight},
	}
}

func priceInsight(ic InsightContext) (domain.Insight, bool) {
	price := ic.Scenario.CarbonPrice()
	switch {
	case price.LessThan(lowCarbonPrice):
		return domain.Insight{
			Kind:   domain.InsightWarning,
			Icon:   "⚠️",
			Title:  "Price Below Benchmarks",
			Detail: fmt.Sprintf("$%s/t is 56%% below EU ETS, risking CBAM penalties", formatAmount(price)),
			Action: "Consider $30-50/t minimum for CBAM compatibility",
		}, true
	case price.GreaterThan(strongCarbonPrice):
		return domain.Insight{
			Kind:   domain.InsightSuccess,
			Icon:   "✅",
			Title:  "Strong Price Signal",
			Detail: fmt.Sprintf("$%s/t enables 15-20%% IRR on efficiency projects", formatAmount(price)),
			Action: "Fast-track CCUS and Green Hydrogen deployment",
		}, true
	}
	return domain.Insight{}, false
}

func pathwayInsight(ic InsightContext) (domain.Insight, bool) {
	switch ic.Scenario.Pathway() {
	case domain.PathwayBAU:
		return domain.Insight{
			Kind:   domain.InsightCritical,
			Icon:   "🚨",
			Title:  "BAU Risks Stranded Assets",
			Detail: "$63.7B in assets face stranding risk without action",
			Action: "Immediate review of 7 facilities over 60 years old",
		}, true
	case domain.PathwayEarlyAction:
		return domain.Insight{
			Kind:   domain.InsightSuccess,
			Icon:   "✅",
			Title:  "Early Action Saves $6.8B",
			Detail: "Front-loaded investment positions India as climate leader",
			Action: "Accelerate 2026-2030 investment phase",
		}, true
	}
	return domain.Insight{}, false
}

// structuralInsight always fires; the PSU/Private age gap is a property of
// the reference data, not of the scenario.
func structuralInsight(InsightContext) (domain.Insight, bool) {
	return domain.Insight{
		Kind:   domain.InsightInfo,
		Icon:   "💡",
		Title:  "PSU Age Gap: 28 Years",
		Detail: "PSU average 49y vs Private 21y creates structural vulnerability",
		Action: "Prioritize PSU modernization or capacity rationalization",
	}, true
}

func elevatedLiabilityInsight(ic InsightContext) (domain.Insight, bool) {
	if !ic.Liability.GreaterThan(elevatedLiabilityAt) {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind:   domain.InsightCritical,
		Icon:   "🚨",
		Title:  "Elevated Liability Scenario",
		Detail: fmt.Sprintf("$%sB exceeds base case by %s%%", formatAmount(ic.Liability), ExcessOverBasePct(ic.Liability)),
		Action: "Accelerate ETS implementation for revenue by 2028",
	}, true
}

// InsightEngine evaluates an ordered rule table against a scenario
type InsightEngine struct {
	rules  []InsightRule
	logger Logger
}

// NewInsightEngine creates an engine with the default rule table
func NewInsightEngine() *InsightEngine {
	return NewInsightEngineWithRules(DefaultInsightRules())
}

// NewInsightEngineWithRules creates an engine evaluating rules in the given order
func NewInsightEngineWithRules(rules []InsightRule) *InsightEngine {
	owned := make([]InsightRule, len(rules))
	copy(owned, rules)
	return &InsightEngine{rules: owned, logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs NopLogger.
func (ie *InsightEngine) SetLogger(l Logger) {
	ie.logger = orNop(l)
}

// Generate evaluates every rule in order and collects the insights that
// fire. Rules are independent; nothing is suppressed or deduplicated.
func (ie *InsightEngine) Generate(scenario domain.Scenario) ([]domain.Insight, error) {
	liability, err := ScenarioLiability(scenario)
	if err != nil {
		return nil, err
	}
	return ie.Evaluate(InsightContext{Scenario: scenario, Liability: liability}), nil
}

// Evaluate runs the rule table against a precomputed context.
func (ie *InsightEngine) Evaluate(ic InsightContext) []domain.Insight {
	insights := make([]domain.Insight, 0, len(ie.rules))
	for _, rule := range ie.rules {
		if insight, ok := rule.Evaluate(ic); ok {
			ie.logger.Debugf("insight rule %s fired: %s", rule.Name, insight.Title)
			insights = append(insights, insight)
		}
	}
	return insights
}

// formatAmount prints d with at least one decimal place: 20 → "20.0",
// 72.25 → "72.25".
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// AlertCount counts critical and warning insights.
func AlertCount(insights []domain.Insight) int {
	n := 0
	for _, in := range insights {
		if in.Kind.IsAlert() {
			n++
		}
	}
	return n
}

// TopInsight returns the first insight, the one the dashboard headlines.
func TopInsight(insights []domain.Insight) (domain.Insight, bool) {
	if len(insights) == 0 {
		return domain.Insight{}, false
	}
	return insights[0], true
}
