package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func buildTestReport(t *testing.T, price, rate float64, pathway string) *Report {
	t.Helper()
	engine := calculation.NewCarbonEngine()
	engine.MonteCarlo.WithSeed(11)

	builder := NewReportBuilder(engine)
	builder.now = func() time.Time { return fixedTime }
	builder.newID = func() string { return "00000000-0000-0000-0000-000000000001" }

	scenario, err := domain.NewScenario(price, rate, pathway)
	require.NoError(t, err)
	report, err := builder.Build(context.Background(), scenario)
	require.NoError(t, err)
	return report
}

func TestReportBuilder_Build(t *testing.T) {
	report := buildTestReport(t, 50, 10, "BAU")

	assert.Equal(t, fixedTime, report.GeneratedAt)
	assert.Equal(t, "18.9", report.Summary.Liability.String())
	assert.Nil(t, report.MonteCarlo.Samples, "raw draws stay out of the report")
	assert.Equal(t, 1000, report.MonteCarlo.Simulations)
	require.Len(t, report.Histogram, 30)
	assert.Len(t, report.Sensitivity, 7)
	assert.Len(t, report.Tornado, 2)
	assert.Len(t, report.TopFacilities, 5)
	assert.Equal(t, "Jamnagar DTA", report.TopFacilities[0].Name)
	assert.Len(t, report.Markets, 6)
	assert.Equal(t, 2, report.AlertCount())

	total := 0
	for _, b := range report.Histogram {
		total += b.Count
	}
	assert.Equal(t, 1000, total)
}

func TestReportBuilder_DefaultIDIsUUID(t *testing.T) {
	builder := NewReportBuilder(calculation.NewCarbonEngine())
	report, err := builder.Build(context.Background(), domain.DefaultScenario())
	require.NoError(t, err)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
}

func TestReportBuilder_DomainError(t *testing.T) {
	scenario, err := domain.NewScenario(50, 0, "Aggressive")
	require.NoError(t, err)

	_, err = NewReportBuilder(calculation.NewCarbonEngine()).Build(context.Background(), scenario)
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestFormatterFunc(t *testing.T) {
	report := &Report{ID: "x"}
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			received = r
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(report)
	assert.NoError(t, err)
	assert.Same(t, report, received)
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	formatter := FormatterFunc{ID: "txt", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}

	filename, err := WriteFormatted(formatter, &Report{GeneratedAt: fixedTime}, dir, "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "carbon_report_20250314_093000.txt")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}

	filename, err := WriteFormatted(formatter, &Report{}, t.TempDir(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("TEXT").Name())
	assert.Equal(t, "markdown", GetFormatterByName("md").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))

	assert.Equal(t, []string{"console", "csv", "html", "json", "markdown", "terminal"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "pretty")
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t, 20, 10, "BAU"))
	require.NoError(t, err)
	content := string(out)

	for _, want := range []string{
		"CARBON LIABILITY REPORT",
		"Report ID: 00000000-0000-0000-0000-000000000001",
		"Carbon Price:   $20.00/tCO2",
		"Pathway:        BAU",
		"Estimate:       $7.5B",
		"[WARNING] Price Below Benchmarks",
		"[CRITICAL] BAU Risks Stranded Assets",
		"SENSITIVITY: CARBON PRICE",
		"← BASE",
		"Total: 23  PSU: 21  Private: 2  High Risk: 14",
		"Jamnagar DTA",
	} {
		assert.Contains(t, content, want)
	}

	_, err = ConsoleFormatter{}.Format(&Report{})
	assert.Error(t, err)
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t, 50, 10, "Aggressive"))
	require.NoError(t, err)

	var decoded struct {
		ID      string `json:"id"`
		Summary struct {
			Liability string `json:"liability"`
			Scenario  struct {
				Pathway string `json:"pathway"`
			} `json:"scenario"`
		} `json:"summary"`
		Insights []struct {
			Type string `json:"type"`
		} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "13.1", decoded.Summary.Liability)
	assert.Equal(t, "Aggressive", decoded.Summary.Scenario.Pathway)
	require.Len(t, decoded.Insights, 1)
	assert.Equal(t, "info", decoded.Insights[0].Type)
	assert.NotContains(t, string(out), "samples")
}

func TestCSVSummarizer_Format(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t, 50, 10, "Aggressive"))
	require.NoError(t, err)

	sections := strings.SplitN(string(out), "\n\n", 2)
	require.Len(t, sections, 2)

	metrics, err := csv.NewReader(strings.NewReader(sections[0])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, metrics[0])
	assert.Contains(t, metrics, []string{"Liability", "13.1"})
	assert.Contains(t, metrics, []string{"Facilities", "23"})

	sweep, err := csv.NewReader(strings.NewReader(sections[1])).ReadAll()
	require.NoError(t, err)
	require.Len(t, sweep, 8)
	assert.Equal(t, []string{"carbonPrice", "-30.0", "35", "9.2"}, sweep[1])
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t, 50, 10, "BAU"))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Carbon Liability Report</title>")
	assert.Contains(t, content, "$18.9B")
	assert.Contains(t, content, `class="insight critical"`)
	assert.Contains(t, content, "BAU Risks Stranded Assets")
	assert.Contains(t, content, "Global Carbon Markets")
}

func TestMarkdownFormatter_Format(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildTestReport(t, 50, 10, "Early Action"))
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "# Carbon Liability Report\n"))
	assert.Contains(t, content, "| Liability estimate | $12.1B |")
	assert.Contains(t, content, "**Early Action Saves $6.8B**")
	assert.Contains(t, content, "| +30.0% | 65.00 | $15.7B |")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\nSome **bold** text.", "notty", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")
}

func TestTerminalFormatter_Format(t *testing.T) {
	out, err := TerminalFormatter{Style: "notty", Width: 100}.Format(buildTestReport(t, 50, 10, "Aggressive"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Carbon Liability Report")
}

func TestSensitivityFormatters(t *testing.T) {
	engine := calculation.NewCarbonEngine()
	rows, err := engine.Sensitivity.Analyze(domain.DefaultScenario(), domain.FactorCarbonPrice, 30)
	require.NoError(t, err)
	tornado, err := engine.Sensitivity.Tornado(domain.DefaultScenario(), 30)
	require.NoError(t, err)
	analysis := &SensitivityAnalysis{Scenario: domain.DefaultScenario(), RangePct: 30, Rows: rows, Tornado: tornado}

	console, err := NewSensitivityFormatter("console").FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, console, "SENSITIVITY ANALYSIS: CARBON PRICE")
	assert.Contains(t, console, "TORNADO")
	assert.Contains(t, console, "swing $7.8B")

	csvOut, err := NewSensitivityFormatter("csv").FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csvOut, "factor,change_pct,value,liability\n"))
	assert.Contains(t, csvOut, "carbonPrice,0.0,50,13.1")

	jsonOut, err := NewSensitivityFormatter("json").FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"rangePct": 30`)

	assert.Equal(t, "console", NewSensitivityFormatter("unknown").Name())

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&SensitivityAnalysis{})
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$13.1B", FormatBillions(calculation.BaseLiability()))
	assert.Equal(t, "$0.0B", FormatBillions(decimal.Zero))
	assert.Equal(t, "+44.0%", FormatPercentage(decimal.NewFromInt(44)))
	assert.Equal(t, "-7.6%", FormatPercentage(decimal.RequireFromString("-7.63")))
	assert.Equal(t, "0.0%", FormatPercentage(decimal.Zero))
}
