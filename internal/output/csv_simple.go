package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVSummarizer renders the headline metrics followed by the sensitivity
// sweep, separated by a blank line.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || report.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	s := report.Summary

	rows := [][]string{
		{"Metric", "Value"},
		{"ReportID", report.ID},
		{"CarbonPrice", s.Scenario.CarbonPrice().StringFixed(2)},
		{"DiscountRate", s.Scenario.DiscountRate().StringFixed(2)},
		{"Pathway", string(s.Scenario.Pathway())},
		{"Liability", s.Liability.StringFixed(1)},
		{"P5", s.MonteCarlo.P5.StringFixed(1)},
		{"P50", s.MonteCarlo.P50.StringFixed(1)},
		{"P95", s.MonteCarlo.P95.StringFixed(1)},
		{"Mean", s.MonteCarlo.Mean.StringFixed(1)},
		{"Alerts", strconv.Itoa(report.AlertCount())},
		{"Facilities", strconv.Itoa(s.FacilityCounts.Total)},
		{"HighRiskFacilities", strconv.Itoa(s.FacilityCounts.HighRisk)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	if len(report.Sensitivity) > 0 {
		buf.WriteString("\n")
		if err := writeSensitivityCSV(w, report.Sensitivity); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
