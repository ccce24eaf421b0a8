package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/tui/tuistyles"
)

// Marker labels a value on the histogram's x axis, e.g. a percentile.
type Marker struct {
	Label string
	Value float64
}

// HistogramChart draws Monte Carlo bins as vertical bars.
type HistogramChart struct {
	Title      string
	Bins       []domain.HistogramBin
	Markers    []Marker
	Height     int
	XAxisLabel string
}

// NewHistogramChart creates a chart for the given bins
func NewHistogramChart(title string, bins []domain.HistogramBin) *HistogramChart {
	return &HistogramChart{
		Title:  title,
		Bins:   bins,
		Height: 10,
	}
}

// WithMarker adds a labelled marker under the bin containing value
func (c *HistogramChart) WithMarker(label string, value float64) *HistogramChart {
	c.Markers = append(c.Markers, Marker{Label: label, Value: value})
	return c
}

// WithHeight sets the bar area height in rows
func (c *HistogramChart) WithHeight(height int) *HistogramChart {
	c.Height = height
	return c
}

// WithAxisLabel sets the x axis caption
func (c *HistogramChart) WithAxisLabel(label string) *HistogramChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *HistogramChart) Render() string {
	if len(c.Bins) == 0 {
		return tuistyles.InfoStyle.Render("No simulation data")
	}
	height := c.Height
	if height < 1 {
		height = 1
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	maxCount := 0
	for _, b := range c.Bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	const yAxisWidth = 7
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBar)

	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = fmt.Sprintf("%d", maxCount)
		}
		content.WriteString(axisStyle.Render(label))
		content.WriteString(" │")
		var line strings.Builder
		for _, b := range c.Bins {
			if c.barHeight(b.Count, maxCount, height) >= row {
				line.WriteString("█")
			} else {
				line.WriteString(" ")
			}
		}
		content.WriteString(barStyle.Render(line.String()))
		content.WriteString("\n")
	}

	content.WriteString(axisStyle.Render("0"))
	content.WriteString(" └")
	content.WriteString(strings.Repeat("─", len(c.Bins)))
	content.WriteString("\n")

	if marks := c.renderMarkers(); marks != "" {
		content.WriteString(strings.Repeat(" ", yAxisWidth+2))
		content.WriteString(marks)
		content.WriteString("\n")
	}

	lo, hi := c.Bins[0].Lower, c.Bins[len(c.Bins)-1].Upper
	rangeText := fmt.Sprintf("$%.1fB ─ $%.1fB", lo, hi)
	if c.XAxisLabel != "" {
		rangeText = c.XAxisLabel + "  " + rangeText
	}
	content.WriteString(strings.Repeat(" ", yAxisWidth+2))
	content.WriteString(tuistyles.SubtitleStyle.Render(rangeText))

	return content.String()
}

// barHeight scales count so the tallest bin fills the chart. Any non-empty
// bin gets at least one row.
func (c *HistogramChart) barHeight(count, maxCount, height int) int {
	if count == 0 || maxCount == 0 {
		return 0
	}
	h := count * height / maxCount
	if h == 0 {
		h = 1
	}
	return h
}

// BinIndex returns the bin containing v, clamped to the first and last bin.
func (c *HistogramChart) BinIndex(v float64) int {
	for i, b := range c.Bins {
		if v < b.Upper {
			return i
		}
	}
	return len(c.Bins) - 1
}

func (c *HistogramChart) renderMarkers() string {
	if len(c.Markers) == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", len(c.Bins)))
	for _, m := range c.Markers {
		idx := c.BinIndex(m.Value)
		if idx >= 0 && idx < len(line) {
			line[idx] = '▲'
		}
	}

	labels := make([]string, len(c.Markers))
	for i, m := range c.Markers {
		labels[i] = fmt.Sprintf("%s $%.1fB", m.Label, m.Value)
	}
	markerStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBarMarker)
	return markerStyle.Render(string(line)) + "  " + tuistyles.SubtitleStyle.Render(strings.Join(labels, " · "))
}
