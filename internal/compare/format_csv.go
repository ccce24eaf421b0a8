package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Carbon Price",
		"Discount Rate",
		"Pathway",
		"Liability ($B)",
		"P5",
		"P50",
		"P95",
		"Alerts",
		"Diff from Base",
		"% Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Scenario.CarbonPrice().StringFixed(2),
		result.Scenario.DiscountRate().StringFixed(2),
		string(result.Scenario.Pathway()),
		result.Liability.StringFixed(1),
		result.P5.StringFixed(1),
		result.P50.StringFixed(1),
		result.P95.StringFixed(1),
		fmt.Sprintf("%d", result.AlertCount),
		result.LiabilityDiffFromBase.StringFixed(1),
		result.LiabilityPctFromBase.StringFixed(1),
	}
}
