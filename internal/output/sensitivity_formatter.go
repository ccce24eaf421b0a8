package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
)

// SensitivityAnalysis is a one-factor sweep plus the two-factor tornado for
// the same scenario.
type SensitivityAnalysis struct {
	Scenario domain.Scenario         `json:"scenario"`
	RangePct float64                 `json:"rangePct"`
	Rows     []domain.SensitivityRow `json:"rows"`
	Tornado  []domain.TornadoBar     `json:"tornado,omitempty"`
}

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *SensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Rows) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	var buf bytes.Buffer
	factor := analysis.Rows[0].Factor

	// Header
	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(factorLabel(factor)))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base Case: %s\n", analysis.Scenario)
	fmt.Fprintf(&buf, "Range: ±%.1f%% (%d steps)\n", analysis.RangePct, len(analysis.Rows))
	fmt.Fprintln(&buf)

	// Sweep table
	writeSensitivityTable(&buf, analysis.Rows)

	// Tornado
	if len(analysis.Tornado) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "TORNADO (widest swing first)")
		fmt.Fprintln(&buf, strings.Repeat("-", 65))
		for _, bar := range analysis.Tornado {
			fmt.Fprintf(&buf, "  %-14s %s → %s  (swing %s)\n",
				factorLabel(bar.Factor),
				FormatBillions(bar.LowLiability),
				FormatBillions(bar.HighLiability),
				FormatBillions(bar.Swing))
		}
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *SensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := writeSensitivityCSV(w, analysis.Rows); err != nil {
		return "", err
	}
	w.Flush()
	return buf.String(), w.Error()
}

func writeSensitivityCSV(w *csv.Writer, rows []domain.SensitivityRow) error {
	if err := w.Write([]string{"factor", "change_pct", "value", "liability"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			string(row.Factor),
			fmt.Sprintf("%.1f", row.ChangePct),
			row.Value.String(),
			row.Liability.StringFixed(1),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *SensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{} // Default to console
	}
}
