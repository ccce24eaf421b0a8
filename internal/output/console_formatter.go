package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
)

// ConsoleFormatter renders the full report as plain text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	var buf bytes.Buffer
	s := report.Summary
	scenario := s.Scenario

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "CARBON LIABILITY REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "Report ID: %s\n", report.ID)
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SCENARIO")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Carbon Price:   $%s/tCO2\n", scenario.CarbonPrice().StringFixed(2))
	fmt.Fprintf(&buf, "  Discount Rate:  %s%%\n", scenario.DiscountRate().StringFixed(1))
	fmt.Fprintf(&buf, "  Pathway:        %s\n", scenario.Pathway())
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "LIABILITY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Estimate:       %s\n", FormatBillions(s.Liability))
	fmt.Fprintf(&buf, "  90%% Range:      %s - %s\n", FormatBillions(s.MonteCarlo.P5), FormatBillions(s.MonteCarlo.P95))
	fmt.Fprintf(&buf, "  Median:         %s\n", FormatBillions(s.MonteCarlo.P50))
	fmt.Fprintf(&buf, "  Mean:           %s\n", FormatBillions(s.MonteCarlo.Mean))
	if report.MonteCarlo != nil {
		fmt.Fprintf(&buf, "  Std Deviation:  %s\n", FormatBillions(report.MonteCarlo.Std))
		fmt.Fprintf(&buf, "  Simulations:    %d\n", report.MonteCarlo.Simulations)
	}
	fmt.Fprintf(&buf, "  Alerts:         %d\n", report.AlertCount())
	fmt.Fprintln(&buf)

	if len(report.Insights) > 0 {
		fmt.Fprintln(&buf, "INSIGHTS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, in := range report.Insights {
			writeInsight(&buf, in)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Sensitivity) > 0 {
		fmt.Fprintf(&buf, "SENSITIVITY: %s\n", strings.ToUpper(factorLabel(report.Sensitivity[0].Factor)))
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		writeSensitivityTable(&buf, report.Sensitivity)
		fmt.Fprintln(&buf)
	}

	if len(report.Histogram) > 0 {
		fmt.Fprintln(&buf, "DISTRIBUTION")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		WriteHistogram(&buf, report.Histogram, 40)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "FACILITIES")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Total: %d  PSU: %d  Private: %d  High Risk: %d\n",
		s.FacilityCounts.Total,
		s.FacilityCounts.ByType[domain.OwnershipPSU],
		s.FacilityCounts.ByType[domain.OwnershipPrivate],
		s.FacilityCounts.HighRisk)
	for _, f := range report.TopFacilities {
		fmt.Fprintf(&buf, "  %-16s %-6s %-8s %6s MMTPA  %3dy  $%sB  %s\n",
			f.Name, f.Operator, f.Ownership, f.Capacity.StringFixed(1), f.Age, f.Liability.StringFixed(2), f.Risk)
	}
	fmt.Fprintln(&buf)

	// Perspectives
	if len(report.Stakeholders) > 0 {
		fmt.Fprintln(&buf, "STAKEHOLDERS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, v := range report.Stakeholders {
			WriteStakeholderView(&buf, v)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Payback) > 0 {
		fmt.Fprintf(&buf, "TRANSITION FUND PAYBACK ($%dB)\n", registry.TransitionFundBillions)
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		WritePayback(&buf, report.Payback, 15)
		fmt.Fprintln(&buf)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "ASSUMPTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func writeInsight(buf *bytes.Buffer, in domain.Insight) {
	fmt.Fprintf(buf, "  [%s] %s\n", strings.ToUpper(string(in.Kind)), in.Title)
	fmt.Fprintf(buf, "      %s\n", in.Detail)
	fmt.Fprintf(buf, "      → %s\n", in.Action)
}

func writeSensitivityTable(buf *bytes.Buffer, rows []domain.SensitivityRow) {
	fmt.Fprintf(buf, "  %-10s %-12s %-12s\n", "Change", "Value", "Liability")
	for _, row := range rows {
		marker := ""
		if row.ChangePct == 0 {
			marker = " ← BASE"
		}
		fmt.Fprintf(buf, "  %+9.1f%% %-12s %-12s%s\n",
			row.ChangePct, row.Value.StringFixed(2), FormatBillions(row.Liability), marker)
	}
}

// WriteHistogram draws one bar per bin scaled to width characters.
func WriteHistogram(buf io.Writer, bins []domain.HistogramBin, width int) {
	peak := 0
	for _, b := range bins {
		if b.Count > peak {
			peak = b.Count
		}
	}
	if peak == 0 {
		return
	}
	for _, b := range bins {
		bar := strings.Repeat("█", b.Count*width/peak)
		fmt.Fprintf(buf, "  %6.1f-%-6.1f %-*s %d\n", b.Lower, b.Upper, width, bar, b.Count)
	}
}

func factorLabel(f domain.SensitivityFactor) string {
	if f == domain.FactorDiscountRate {
		return "Discount Rate"
	}
	return "Carbon Price"
}
