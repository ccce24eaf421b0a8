package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/output"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/rgehrsitz/carbonliab/internal/tui/components"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.report == nil:
		content = m.renderLoading()
	default:
		// Render current scene
		switch m.currentScene {
		case SceneDashboard:
			content = m.renderDashboard()
		case SceneInsights:
			content = m.renderInsights()
		case SceneSensitivity:
			content = m.renderSensitivity()
		case SceneDistribution:
			content = m.renderDistribution()
		case SceneCompare:
			content = m.renderCompare()
		case SceneStakeholders:
			content = m.renderStakeholders()
		case SceneHelp:
			content = m.renderHelp()
		default:
			content = "Unknown scene"
		}
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	container := lipgloss.NewStyle()
	if h := m.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar); h > 0 {
		container = container.Height(h)
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, container.Render(content), statusBar)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Carbon Liability Dashboard")

	tabs := make([]string, len(scenes))
	for i, s := range scenes {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs[i] = TableHighlightStyle.Render("[" + label + "]")
		} else {
			tabs[i] = SubtitleStyle.Render(" " + label + " ")
		}
	}

	crumb := m.scenarioName
	if m.loading {
		crumb += " · " + m.loadingMessage
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+SubtitleStyle.Render(crumb),
		strings.Join(tabs, " "),
	)
}

// renderStatusBar renders key hints and the latest notice
func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.notice != "" {
		status += "  " + SubtitleStyle.Render(m.notice)
	}
	style := StatusBarStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(status)
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render("⠋ " + message)
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) +
		"\n\n" + SubtitleStyle.Render("Adjust a control or press r to reset.")
}

func (m Model) renderControls() string {
	return ActiveBorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.priceSlider.Render(),
		"",
		m.rateSlider.Render(),
		"",
		m.pathway.Render(),
	))
}

func (m Model) metricCards() []*components.MetricCard {
	r := m.report
	liability := r.Summary.Liability

	estimate := components.NewMetricCard("Estimated Liability", FormatBillions(liability)).
		WithDescription("vs $13.1B base case")
	diff := liability.Sub(calculation.BaseLiability())
	if !diff.IsZero() {
		change := fmt.Sprintf("%s (%s)", signedBillions(diff), output.FormatPercentage(calculation.ExcessOverBasePct(liability)))
		estimate.WithTrend(diff.IsNegative(), change)
	}

	rangeCard := components.NewMetricCard("90% Range",
		fmt.Sprintf("%s – %s", FormatBillions(r.MonteCarlo.P5), FormatBillions(r.MonteCarlo.P95))).
		WithDescription(fmt.Sprintf("median %s", FormatBillions(r.MonteCarlo.P50)))

	alerts := r.AlertCount()
	alertCard := components.NewMetricCard("Alerts", fmt.Sprintf("%d", alerts)).
		WithDescription(fmt.Sprintf("%d insights", len(r.Insights)))
	if alerts > 0 {
		alertCard.WithAccent(ColorDanger)
	} else {
		alertCard.WithAccent(ColorSuccess)
	}

	return []*components.MetricCard{estimate, rangeCard, alertCard}
}

func signedBillions(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatBillions(d.Abs())
	}
	return "+" + FormatBillions(d)
}

func (m Model) renderDashboard() string {
	right := lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(m.metricCards(), 3),
		"",
		TitleStyle.Render("Key Insights"),
		components.InsightList(m.report.Insights, 3),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderControls(), "  ", right)
}

func (m Model) renderInsights() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Insights"),
		SubtitleStyle.Render(m.describeScenario()),
		"",
		components.InsightList(m.report.Insights, 0),
	)
}

func (m Model) renderSensitivity() string {
	r := m.report
	var b strings.Builder

	factor := "Carbon Price"
	if m.reports.SensitivityFactor == domain.FactorDiscountRate {
		factor = "Discount Rate"
	}
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Sensitivity: %s ±%g%%", factor, m.reports.SensitivityRange)))
	b.WriteString("\n\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %12s %12s", "Change", "Value", "Liability")))
	b.WriteString("\n")
	for _, row := range r.Sensitivity {
		line := fmt.Sprintf("%-8s %12s %12s", fmt.Sprintf("%+.0f%%", row.ChangePct), row.Value.StringFixed(1), FormatBillions(row.Liability))
		if row.ChangePct == 0 {
			b.WriteString(TableHighlightStyle.Render(line + "  ← base"))
		} else {
			b.WriteString(TableCellStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(r.Tornado) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Tornado"))
		b.WriteString("\n")
		b.WriteString(renderTornado(r.Tornado, 30))
	}
	return b.String()
}

// renderTornado draws each factor's swing as a bar scaled to the widest.
func renderTornado(bars []domain.TornadoBar, width int) string {
	widest := decimal.Zero
	for _, bar := range bars {
		if bar.Swing.GreaterThan(widest) {
			widest = bar.Swing
		}
	}

	lines := make([]string, len(bars))
	for i, bar := range bars {
		n := 0
		if widest.IsPositive() {
			n = int(bar.Swing.Div(widest).Mul(decimal.NewFromInt(int64(width))).IntPart())
		}
		name := "Carbon Price"
		if bar.Factor == domain.FactorDiscountRate {
			name = "Discount Rate"
		}
		lines[i] = fmt.Sprintf("%-14s %s %s – %s (swing %s)",
			name,
			lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat("█", max(n, 1))),
			FormatBillions(bar.LowLiability), FormatBillions(bar.HighLiability), FormatBillions(bar.Swing))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDistribution() string {
	mc := m.report.MonteCarlo
	p5, _ := mc.P5.Float64()
	p50, _ := mc.P50.Float64()
	p95, _ := mc.P95.Float64()

	chart := components.NewHistogramChart(fmt.Sprintf("Monte Carlo: %d simulations", mc.Simulations), m.report.Histogram).
		WithMarker("P5", p5).
		WithMarker("P50", p50).
		WithMarker("P95", p95).
		WithAxisLabel("Liability")

	stats := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("P25", FormatBillions(mc.P25)),
		components.NewMetricCard("P75", FormatBillions(mc.P75)),
		components.NewMetricCard("Mean", FormatBillions(mc.Mean)),
		components.NewMetricCard("Std Dev", FormatBillions(mc.Std)),
	}, 4)

	return lipgloss.JoinVertical(lipgloss.Left, chart.Render(), "", stats)
}

func (m Model) renderCompare() string {
	if m.comparison == nil || m.comparisonSeq != m.seq {
		return BorderStyle.Render("⠋ Comparing pathways...")
	}

	var recs []string
	for _, rec := range m.comparison.Recommendations {
		recs = append(recs, "• "+rec)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Pathway Comparison"),
		SubtitleStyle.Render(fmt.Sprintf("$%.0f/t at %.1f%%, base %s", m.priceSlider.Value, m.rateSlider.Value, m.comparison.BaseScenarioName)),
		"",
		components.ScenarioList(m.comparison, -1),
		"",
		InfoStyle.Render(strings.Join(recs, "\n")),
	)
}

var toneAccent = map[domain.MetricTone]lipgloss.Color{
	domain.ToneGood:    ColorSuccess,
	domain.ToneBad:     ColorDanger,
	domain.ToneNeutral: ColorAccent,
}

func (m Model) renderStakeholders() string {
	view, err := registry.StakeholderView(m.stakeholder, m.report.Summary.Liability)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	// Stakeholder tabs
	tabs := make([]string, 0, len(domain.Stakeholders()))
	for _, s := range domain.Stakeholders() {
		if s == m.stakeholder {
			tabs = append(tabs, TableHighlightStyle.Render("["+string(s)+"]"))
		} else {
			tabs = append(tabs, SubtitleStyle.Render(" "+string(s)+" "))
		}
	}

	cards := make([]*components.MetricCard, 0, len(view.Metrics))
	for _, metric := range view.Metrics {
		cards = append(cards, components.NewMetricCard(metric.Label, metric.Value).WithAccent(toneAccent[metric.Tone]))
	}

	actions := make([]string, len(view.Actions))
	for i, a := range view.Actions {
		actions[i] = "✓ " + a
	}

	// Payback series
	var payback strings.Builder
	output.WritePayback(&payback, registry.PaybackSchedule(), 12)
	year, _ := registry.PaybackYear()

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(view.Icon+" Stakeholder Perspectives"),
		strings.Join(tabs, " ")+"  "+SubtitleStyle.Render("v: next"),
		"",
		components.MetricGrid(cards, 4),
		"",
		TitleStyle.Render("Recommended Actions"),
		InfoStyle.Render(strings.Join(actions, "\n")),
		"",
		TitleStyle.Render(fmt.Sprintf("Investment Payback ($%dB Transition Fund)", registry.TransitionFundBillions)),
		payback.String(),
		SubtitleStyle.Render(fmt.Sprintf("Back in the black by %d", year)),
	)
}

func (m Model) renderHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Keyboard Shortcuts"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		SubtitleStyle.Render("Liability = $13.1B × (price/50) × pathway multiplier × (10/rate)"),
	)
}

func (m Model) describeScenario() string {
	return fmt.Sprintf("%s: %s, %s, %s pathway", m.scenarioName,
		m.priceSlider.FormatValue(m.priceSlider.Value),
		m.rateSlider.FormatValue(m.rateSlider.Value), m.pathway.Selected())
}
