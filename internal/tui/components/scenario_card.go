package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carbonliab/internal/compare"
	"github.com/rgehrsitz/carbonliab/internal/tui/tuistyles"
)

// ScenarioCard summarizes one compared scenario: its liability, the
// simulated range and its difference from the base.
type ScenarioCard struct {
	Result     compare.ComparisonResult
	IsBase     bool
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a card for a comparison result
func NewScenarioCard(result compare.ComparisonResult) *ScenarioCard {
	return &ScenarioCard{Result: result, Width: 34}
}

// AsBase marks the card as the comparison base
func (s *ScenarioCard) AsBase() *ScenarioCard {
	s.IsBase = true
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

func (s *ScenarioCard) diffText() string {
	if s.IsBase {
		return tuistyles.SubtitleStyle.Render("base")
	}
	r := s.Result
	decrease := r.LiabilityDiffFromBase.IsNegative()
	sign := "+"
	if decrease {
		sign = "-"
	}
	change := fmt.Sprintf("%s$%sB (%s%%)", sign, r.LiabilityDiffFromBase.Abs().StringFixed(1), r.LiabilityPctFromBase.StringFixed(1))
	return tuistyles.MetricTrendStyle(decrease).Render(tuistyles.TrendIndicator(decrease) + " " + change)
}

// Render returns the bordered card
func (s *ScenarioCard) Render() string {
	r := s.Result
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(r.ScenarioName))
	content.WriteString("\n")
	content.WriteString(tuistyles.MetricValueStyle.Render(tuistyles.FormatBillions(r.Liability)))
	content.WriteString("  ")
	content.WriteString(s.diffText())
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("90%% range %s – %s",
		tuistyles.FormatBillions(r.P5), tuistyles.FormatBillions(r.P95))))
	if r.AlertCount > 0 {
		content.WriteString("\n")
		content.WriteString(tuistyles.ErrorStyle.Render(fmt.Sprintf("%d alerts", r.AlertCount)))
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(content.String())
}

// RenderCompact returns a single-line version
func (s *ScenarioCard) RenderCompact() string {
	name := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Result.ScenarioName)
	return fmt.Sprintf("%s %s %s", name, tuistyles.FormatBillions(s.Result.Liability), s.diffText())
}

// ScenarioList renders cards for a comparison set, base first
func ScenarioList(set *compare.ComparisonSet, selectedIndex int) string {
	if set == nil || set.BaseResult == nil {
		return tuistyles.InfoStyle.Render("No comparison available")
	}

	results := set.All()
	cards := make([]string, len(results))
	for i, r := range results {
		card := NewScenarioCard(r).SetSelected(i == selectedIndex)
		if i == 0 {
			card.AsBase()
		}
		cards[i] = card.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
