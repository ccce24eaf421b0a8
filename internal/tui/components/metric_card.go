package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carbonliab/internal/tui/tuistyles"
)

// MetricCard displays one headline figure with an optional change against
// the base case.
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Accent      lipgloss.Color
	Width       int
}

// Trend is a change relative to the base case.
type Trend struct {
	IsDecrease bool
	Change     string // e.g. "+$5.8B" or "-7.6%"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithTrend adds a change indicator
func (m *MetricCard) WithTrend(isDecrease bool, change string) *MetricCard {
	m.Trend = &Trend{IsDecrease: isDecrease, Change: change}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithAccent colors the value, e.g. red when alerts are present
func (m *MetricCard) WithAccent(c lipgloss.Color) *MetricCard {
	m.Accent = c
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) valueStyle() lipgloss.Style {
	if m.Accent != "" {
		return tuistyles.MetricValueStyle.Foreground(m.Accent)
	}
	return tuistyles.MetricValueStyle
}

func (m *MetricCard) trendText() string {
	if m.Trend == nil {
		return ""
	}
	style := tuistyles.MetricTrendStyle(m.Trend.IsDecrease)
	return style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsDecrease), m.Trend.Change))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.valueStyle().Render(m.Value)
	if t := m.trendText(); t != "" {
		content += "\n" + t
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.valueStyle().Render(m.Value)
	if t := m.trendText(); t != "" {
		out += " " + t
	}
	return out
}

// MetricGrid lays cards out in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
