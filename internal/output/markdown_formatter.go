package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	var sb strings.Builder
	s := report.Summary

	fmt.Fprintf(&sb, "# %s\n\n", report.Title)
	fmt.Fprintf(&sb, "**Scenario:** $%s/tCO2, %s%% discount rate, %s pathway\n\n",
		s.Scenario.CarbonPrice().StringFixed(2), s.Scenario.DiscountRate().StringFixed(1), s.Scenario.Pathway())

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Liability estimate | %s |\n", FormatBillions(s.Liability))
	fmt.Fprintf(&sb, "| 90%% range | %s - %s |\n", FormatBillions(s.MonteCarlo.P5), FormatBillions(s.MonteCarlo.P95))
	fmt.Fprintf(&sb, "| Median | %s |\n", FormatBillions(s.MonteCarlo.P50))
	fmt.Fprintf(&sb, "| Facilities | %d (%d high risk) |\n", s.FacilityCounts.Total, s.FacilityCounts.HighRisk)
	fmt.Fprintf(&sb, "| Alerts | %d |\n\n", report.AlertCount())

	if len(report.Insights) > 0 {
		sb.WriteString("## Insights\n\n")
		for _, in := range report.Insights {
			fmt.Fprintf(&sb, "- %s **%s**: %s. _%s_\n", in.Icon, in.Title, in.Detail, in.Action)
		}
		sb.WriteString("\n")
	}

	if len(report.Sensitivity) > 0 {
		fmt.Fprintf(&sb, "## Sensitivity: %s\n\n", factorLabel(report.Sensitivity[0].Factor))
		sb.WriteString("| Change | Value | Liability |\n|---:|---:|---:|\n")
		for _, row := range report.Sensitivity {
			fmt.Fprintf(&sb, "| %+.1f%% | %s | %s |\n", row.ChangePct, row.Value.StringFixed(2), FormatBillions(row.Liability))
		}
		sb.WriteString("\n")
	}

	if len(report.TopFacilities) > 0 {
		sb.WriteString("## Largest Facility Liabilities\n\n")
		sb.WriteString("| Facility | Operator | Type | Age | Liability | Risk |\n|---|---|---|---:|---:|---|\n")
		for _, f := range report.TopFacilities {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d | $%sB | %s |\n",
				f.Name, f.Operator, f.Ownership, f.Age, f.Liability.StringFixed(2), f.Risk)
		}
		sb.WriteString("\n")
	}

	if len(report.Assumptions) > 0 {
		sb.WriteString("## Assumptions\n\n")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&sb, "- %s\n", a)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "_Report %s_\n", report.ID)
	return []byte(sb.String()), nil
}

// InsightsMarkdown renders a bare insight list, used by the insights command.
func InsightsMarkdown(insights []domain.Insight) string {
	var sb strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&sb, "### %s %s\n\n%s\n\n> %s\n\n", in.Icon, in.Title, in.Detail, in.Action)
	}
	return sb.String()
}

// TerminalFormatter renders the markdown report with ANSI styling for a terminal.
type TerminalFormatter struct {
	Style string // glamour style name; "auto" detects the terminal background
	Width int
}

func (t TerminalFormatter) Name() string { return "terminal" }

func (t TerminalFormatter) Format(report *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	out, err := RenderMarkdown(string(md), t.Style, t.Width)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// RenderMarkdown renders markdown for the terminal with glamour.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
