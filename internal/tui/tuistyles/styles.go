// Package tuistyles holds the dashboard palette and shared lipgloss styles.
// It has no dependencies on the tui package so components can import it.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E8B57")
	ColorSecondary = lipgloss.Color("#5F9EA0")
	ColorAccent    = lipgloss.Color("#F4A261")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorWarning   = lipgloss.Color("#E9C46A")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorInfo      = lipgloss.Color("#457B9D")

	ColorBackground = lipgloss.Color("#1D1F21")
	ColorForeground = lipgloss.Color("#E0E0E0")
	ColorMuted      = lipgloss.Color("#7A7A7A")
	ColorBorder     = lipgloss.Color("#3C3F41")

	ColorBar       = lipgloss.Color("#52B788")
	ColorBarMarker = lipgloss.Color("#F4A261")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// MetricTrendStyle colors a change against the base case. A liability
// decrease is good news, so decreases render in the success color.
func MetricTrendStyle(isDecrease bool) lipgloss.Style {
	if isDecrease {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow for a change direction.
func TrendIndicator(isDecrease bool) string {
	if isDecrease {
		return "▼"
	}
	return "▲"
}

// InsightStyle returns the color for an insight kind.
func InsightStyle(kind domain.InsightKind) lipgloss.Style {
	switch kind {
	case domain.InsightCritical:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	case domain.InsightWarning:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	case domain.InsightSuccess:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	}
}

// FormatBillions renders a liability in USD billions, e.g. "$13.1B".
func FormatBillions(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(1) + "B"
}
