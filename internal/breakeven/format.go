package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sc := result.Request.Scenario
	sb.WriteString(fmt.Sprintf("Scenario:            $%s/t, %s%%, %s\n", sc.CarbonPrice().String(), sc.DiscountRate().String(), sc.Pathway()))
	sb.WriteString(fmt.Sprintf("Solve For:           %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal:                %s\n", tf.describeGoal(result.Request)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	// Solved parameter
	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalCarbonPrice != nil {
		sb.WriteString(fmt.Sprintf("Carbon Price:        $%s/t\n", result.OptimalCarbonPrice.StringFixed(2)))
	}
	if result.OptimalDiscountRate != nil {
		sb.WriteString(fmt.Sprintf("Discount Rate:       %s%%\n", result.OptimalDiscountRate.StringFixed(2)))
	}
	sb.WriteString("\n")

	// Liability comparison
	sb.WriteString("LIABILITY\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target:              %s\n", tf.formatBillions(result.TargetLiability)))
	sb.WriteString(fmt.Sprintf("Achieved:            %s\n", tf.formatBillions(result.AchievedLiability)))
	sb.WriteString(fmt.Sprintf("Starting Scenario:   %s\n", tf.formatBillions(result.BaseLiability)))
	sb.WriteString(fmt.Sprintf("Change:              %s%s\n",
		tf.deltaSymbol(result.LiabilityDiffFromBase), tf.formatBillions(result.LiabilityDiffFromBase.Abs())))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS: ALL PARAMETERS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	// Table header
	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s\n", "Solve For", "Break-Even", "Liability", "Change"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		value := ""
		switch {
		case res.OptimalCarbonPrice != nil:
			value = "$" + res.OptimalCarbonPrice.StringFixed(2) + "/t"
		case res.OptimalDiscountRate != nil:
			value = res.OptimalDiscountRate.StringFixed(2) + "%"
		}
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s\n",
			tf.truncate(string(res.Request.Target), 20),
			value,
			tf.formatBillions(res.AchievedLiability),
			tf.deltaSymbol(res.LiabilityDiffFromBase)+tf.formatBillions(res.LiabilityDiffFromBase.Abs())))
	}
	sb.WriteString("\n")

	// Recommendations
	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) describeGoal(req OptimizationRequest) string {
	switch req.Goal {
	case GoalMatchLiability:
		if req.Constraints.TargetLiability != nil {
			return "liability of " + tf.formatBillions(*req.Constraints.TargetLiability)
		}
	case GoalMatchPathway:
		return "liability of the " + string(req.Constraints.TargetPathway) + " pathway"
	}
	return string(req.Goal)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatBillions(d decimal.Decimal) string {
	return "$" + d.StringFixed(1) + "B"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
