package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/compare"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParameterSlider_StepsAndBounds(t *testing.T) {
	s := NewParameterSlider("Discount Rate", 10, 5, 15, 0.5).WithFormat("%.1f").WithUnit("%")

	assert.True(t, s.Increment())
	assert.Equal(t, 10.5, s.Value)

	for i := 0; i < 30; i++ {
		s.Increment()
	}
	assert.Equal(t, 15.0, s.Value)
	assert.False(t, s.Increment(), "should not move past max")

	for i := 0; i < 30; i++ {
		s.Decrement()
	}
	assert.Equal(t, 5.0, s.Value)
	assert.False(t, s.Decrement(), "should not move past min")
	assert.Equal(t, 0.0, s.Percentage())
}

func TestParameterSlider_SetValueSnaps(t *testing.T) {
	s := NewParameterSlider("Carbon Price", 50, 10, 200, 5)

	s.SetValue(52)
	assert.Equal(t, 50.0, s.Value)
	s.SetValue(53)
	assert.Equal(t, 55.0, s.Value)
	s.SetValue(1000)
	assert.Equal(t, 200.0, s.Value)
	s.SetValue(-4)
	assert.Equal(t, 10.0, s.Value)
	assert.Equal(t, 1.0, NewParameterSlider("x", 200, 10, 200, 5).Percentage())
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("Carbon Price", 50, 10, 200, 5).WithPrefix("$").WithUnit("/t").WithWidth(20)

	out := s.Render()
	assert.Contains(t, out, "Carbon Price")
	assert.Contains(t, out, "$50/t")
	assert.Contains(t, out, "$10/t  ─  $200/t")
	assert.Contains(t, out, "●")
	assert.Contains(t, s.RenderCompact(), "Carbon Price:")
}

func TestChoiceSelector(t *testing.T) {
	c := NewChoiceSelector("Pathway", []string{"BAU", "Moderate", "Aggressive", "Early Action"}, "Aggressive")
	assert.Equal(t, "Aggressive", c.Selected())

	c.Next()
	assert.Equal(t, "Early Action", c.Selected())
	c.Next()
	assert.Equal(t, "BAU", c.Selected())
	c.Prev()
	assert.Equal(t, "Early Action", c.Selected())

	assert.False(t, c.Select("Net Zero"))
	assert.Equal(t, "Early Action", c.Selected())
	assert.Contains(t, c.Render(), "‹Early Action›")

	empty := NewChoiceSelector("None", nil, "x")
	empty.Next()
	assert.Equal(t, "", empty.Selected())
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Estimated Liability", "$14.4B").WithTrend(false, "+$1.3B (+10.0%)")
	out := card.Render()
	assert.Contains(t, out, "Estimated Liability")
	assert.Contains(t, out, "$14.4B")
	assert.Contains(t, out, "▲ +$1.3B")

	compact := NewMetricCard("Alerts", "0").WithTrend(true, "-2").RenderCompact()
	assert.Contains(t, compact, "Alerts: 0 ▼ -2")

	assert.Equal(t, "", MetricGrid(nil, 3))
	grid := MetricGrid([]*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}, 2)
	assert.Contains(t, grid, "A")
	assert.Contains(t, grid, "C")
}

func TestHistogramChart(t *testing.T) {
	r := &domain.MonteCarloResult{Samples: []float64{10, 11, 11, 12, 12, 12, 13, 14, 15, 20}}
	chart := NewHistogramChart("Distribution", r.Histogram(5)).
		WithMarker("P50", 12).
		WithHeight(4)

	assert.Equal(t, 0, chart.BinIndex(10))
	assert.Equal(t, 1, chart.BinIndex(12))
	assert.Equal(t, 4, chart.BinIndex(20))
	assert.Equal(t, 4, chart.BinIndex(99))

	out := chart.Render()
	assert.Contains(t, out, "Distribution")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "P50 $12.0B")
	assert.Contains(t, out, "$10.0B ─ $20.0B")
	// title, blank, four bar rows, axis, markers, range
	assert.Len(t, strings.Split(out, "\n"), 9)

	assert.Contains(t, NewHistogramChart("", nil).Render(), "No simulation data")
}

func TestHistogramChart_BarHeight(t *testing.T) {
	c := NewHistogramChart("", nil)
	assert.Equal(t, 0, c.barHeight(0, 10, 8))
	assert.Equal(t, 1, c.barHeight(1, 100, 8), "non-empty bins stay visible")
	assert.Equal(t, 8, c.barHeight(10, 10, 8))
	assert.Equal(t, 4, c.barHeight(5, 10, 8))
}

func TestInsightList(t *testing.T) {
	insights := []domain.Insight{
		{Kind: domain.InsightCritical, Title: "BAU Risks Stranded Assets", Detail: "detail", Action: "act"},
		{Kind: domain.InsightInfo, Title: "PSU Age Gap: 28 Years"},
	}

	out := InsightList(insights, 0)
	assert.Contains(t, out, "[CRITICAL] BAU Risks Stranded Assets")
	assert.Contains(t, out, "→ act")
	assert.Contains(t, out, "[INFO] PSU Age Gap")

	assert.NotContains(t, InsightList(insights, 1), "PSU Age Gap")
	assert.Contains(t, InsightList(nil, 0), "No insights")
}

func TestScenarioList(t *testing.T) {
	base := compare.ComparisonResult{
		ScenarioName: "Aggressive",
		Liability:    decimal.RequireFromString("13.1"),
		P5:           decimal.RequireFromString("9.0"),
		P95:          decimal.RequireFromString("17.5"),
	}
	bau := compare.ComparisonResult{
		ScenarioName:          "BAU",
		Liability:             decimal.RequireFromString("18.9"),
		LiabilityDiffFromBase: decimal.RequireFromString("5.8"),
		LiabilityPctFromBase:  decimal.RequireFromString("44.3"),
		AlertCount:            2,
	}
	set := &compare.ComparisonSet{BaseScenarioName: "Aggressive", BaseResult: &base, AlternativeResults: []compare.ComparisonResult{bau}}

	out := ScenarioList(set, 1)
	assert.Contains(t, out, "Aggressive")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "▲ +$5.8B (44.3%)")
	assert.Contains(t, out, "2 alerts")
	assert.Contains(t, out, "90% range $9.0B – $17.5B")

	assert.Contains(t, ScenarioList(nil, 0), "No comparison available")
	assert.Contains(t, NewScenarioCard(bau).RenderCompact(), "$18.9B")
}
