package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns everything written
// to stdout. Flag values are reset first since the commands are package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	if args == nil {
		args = []string{}
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	body := `scenarios:
  - name: Policy Push
    carbon_price: 100
    discount_rate: 10
    pathway: Early Action
  - name: Status Quo
    pathway: BAU
simulation:
  runs: 300
  seed: 5
sensitivity:
  factor: discount_rate
  range_pct: 20
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "carbonliab" {
		t.Errorf("Expected root command use to be 'carbonliab', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}

	out, err := execute(t)
	if err != nil {
		t.Errorf("Expected no error for root command execution, got %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Error("Expected root command to show usage")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"estimate", "monte-carlo", "sensitivity", "insights", "facilities",
		"markets", "glossary", "summary", "report", "compare", "breakeven", "stakeholders", "payback", "validate", "serve", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestEstimate(t *testing.T) {
	out, err := execute(t, "estimate")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if !strings.Contains(out, "Liability:      $13.1B (0.0% vs base case)") {
		t.Errorf("unexpected base case output:\n%s", out)
	}

	out, err = execute(t, "estimate", "--pathway", "BAU")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if !strings.Contains(out, "$18.9B (+44.0% vs base case)") {
		t.Errorf("unexpected BAU output:\n%s", out)
	}
	if !strings.Contains(out, "Scenario:       Custom") {
		t.Errorf("overridden scenario should be labelled Custom:\n%s", out)
	}
}

func TestEstimate_JSON(t *testing.T) {
	out, err := execute(t, "estimate", "--price", "75", "--rate", "8", "--pathway", "Moderate", "-f", "json")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	var got struct {
		Liability string `json:"liability"`
		Excess    string `json:"excessOverBasePct"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Liability != "29.7" {
		t.Errorf("Expected liability 29.7, got %s", got.Liability)
	}
	if got.Excess != "127" {
		t.Errorf("Expected excess 127, got %s", got.Excess)
	}
}

func TestEstimate_Errors(t *testing.T) {
	if _, err := execute(t, "estimate", "--rate", "0"); !errors.Is(err, domain.ErrDomain) {
		t.Errorf("Expected ErrDomain for zero rate, got %v", err)
	}
	if _, err := execute(t, "estimate", "--pathway", "Net Zero"); !errors.Is(err, domain.ErrInvalidPathway) {
		t.Errorf("Expected ErrInvalidPathway, got %v", err)
	}
	if _, err := execute(t, "estimate", "-f", "xml"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestEstimate_FromConfig(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "estimate", "-c", path)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if !strings.Contains(out, "Scenario:       Policy Push") || !strings.Contains(out, "$24.1B") {
		t.Errorf("Expected the first scenario from the file:\n%s", out)
	}

	out, err = execute(t, "estimate", "-c", path, "-s", "Status Quo")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if !strings.Contains(out, "$18.9B") {
		t.Errorf("Expected Status Quo to use defaults with BAU:\n%s", out)
	}

	if _, err := execute(t, "estimate", "-c", path, "-s", "Missing"); err == nil {
		t.Error("Expected an error for an unknown scenario name")
	}
}

func TestMonteCarlo(t *testing.T) {
	out, err := execute(t, "monte-carlo", "--seed", "42", "--runs", "500", "-f", "json")
	if err != nil {
		t.Fatalf("monte-carlo failed: %v", err)
	}
	var got struct {
		Result struct {
			Simulations int       `json:"simulations"`
			Samples     []float64 `json:"samples"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Result.Simulations != 500 {
		t.Errorf("Expected 500 simulations, got %d", got.Result.Simulations)
	}
	if got.Result.Samples != nil {
		t.Error("Expected samples to be omitted without --samples")
	}

	// the same seed reproduces the same distribution
	first, _ := execute(t, "mc", "--seed", "7", "--bins", "10")
	second, _ := execute(t, "mc", "--seed", "7", "--bins", "10")
	if first != second {
		t.Error("Expected seeded runs to be identical")
	}
	if !strings.Contains(first, "MONTE CARLO: 1000 simulations") || !strings.Contains(first, "█") {
		t.Errorf("unexpected console output:\n%s", first)
	}

	if _, err := execute(t, "monte-carlo", "--runs", "0"); !errors.Is(err, domain.ErrInvalidSimulationCount) {
		t.Errorf("Expected ErrInvalidSimulationCount, got %v", err)
	}
}

func TestSensitivity(t *testing.T) {
	out, err := execute(t, "sensitivity", "-f", "csv", "--no-tornado")
	if err != nil {
		t.Fatalf("sensitivity failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 8 {
		t.Errorf("Expected header plus 7 rows, got %d lines:\n%s", len(lines), out)
	}

	if _, err := execute(t, "sensitivity", "--factor", "pathway"); !errors.Is(err, domain.ErrInvalidFactor) {
		t.Errorf("Expected ErrInvalidFactor, got %v", err)
	}

	out, err = execute(t, "sensitivity", "-c", writeConfig(t))
	if err != nil {
		t.Fatalf("sensitivity failed: %v", err)
	}
	if !strings.Contains(strings.ToUpper(out), "DISCOUNT RATE") {
		t.Errorf("Expected the config's discount rate sweep:\n%s", out)
	}
}

func TestInsights(t *testing.T) {
	out, err := execute(t, "insights", "--pathway", "BAU")
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if !strings.Contains(out, "3 insights, 2 alerts") {
		t.Errorf("unexpected insight summary:\n%s", out)
	}
	if !strings.Contains(out, "[critical] BAU Risks Stranded Assets") {
		t.Errorf("Expected the BAU critical insight:\n%s", out)
	}

	out, err = execute(t, "insights", "-f", "md")
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if !strings.Contains(out, "### ") {
		t.Errorf("Expected markdown headings:\n%s", out)
	}
}

func TestFacilities(t *testing.T) {
	out, err := execute(t, "facilities", "--type", "PSU", "--risk", "B")
	if err != nil {
		t.Fatalf("facilities failed: %v", err)
	}
	if !strings.Contains(out, "7 facilities") {
		t.Errorf("Expected 7 PSU facilities rated B:\n%s", out)
	}

	out, err = execute(t, "facilities", "--top", "2", "-f", "json")
	if err != nil {
		t.Fatalf("facilities failed: %v", err)
	}
	var got struct {
		Facilities []struct {
			Name string `json:"name"`
		} `json:"facilities"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Count != 2 || got.Facilities[0].Name != "Jamnagar DTA" {
		t.Errorf("Expected the two largest liabilities, got %+v", got)
	}

	if _, err := execute(t, "facilities", "--type", "State"); err == nil {
		t.Error("Expected an error for an unknown ownership type")
	}
	if _, err := execute(t, "facilities", "--risk", "CCC"); err == nil {
		t.Error("Expected an error for an unknown risk grade")
	}
}

func TestMarketsAndGlossary(t *testing.T) {
	out, err := execute(t, "markets")
	if err != nil {
		t.Fatalf("markets failed: %v", err)
	}
	if !strings.Contains(out, "EU ETS") || !strings.Contains(out, "€68.5/t") {
		t.Errorf("unexpected markets output:\n%s", out)
	}

	out, err = execute(t, "glossary")
	if err != nil {
		t.Fatalf("glossary failed: %v", err)
	}
	if !strings.Contains(out, "CBAM") {
		t.Errorf("Expected CBAM in glossary:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	out, err := execute(t, "summary", "--seed", "3")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !strings.Contains(out, "Facilities:     23 (PSU 21, Private 2), 14 high risk") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestReport(t *testing.T) {
	out, err := execute(t, "report", "--seed", "3", "-f", "json")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	var got struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.ID == "" || got.Title != "Carbon Liability Report: Base Case" {
		t.Errorf("unexpected report header %+v", got)
	}

	dir := t.TempDir()
	out, err = execute(t, "report", "-f", "markdown", "-o", dir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".md" {
		t.Errorf("Expected a .md file in %s, got %s", dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected report file to exist: %v", err)
	}

	if _, err := execute(t, "report", "-f", "pdf"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--seed", "1")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"CARBON LIABILITY SCENARIO COMPARISON", "BAU", "Moderate", "Early Action"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in comparison:\n%s", want, out)
		}
	}

	out, err = execute(t, "compare", "-c", writeConfig(t), "--base", "Status Quo", "-f", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "Status Quo") || !strings.Contains(out, "Policy Push") {
		t.Errorf("Expected both configured scenarios:\n%s", out)
	}

	if _, err := execute(t, "compare", "-c", writeConfig(t), "--base", "Nope"); err == nil {
		t.Error("Expected an error for an unknown base scenario")
	}
}

func TestCompare_WhatIf(t *testing.T) {
	out, err := execute(t, "compare", "--with", "price_double,early_action",
		"--transform", "scale_price:pct=25;set_rate:rate=8", "-f", "json", "--seed", "3")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	var set struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenarioName"`
			Liability    string `json:"liability"`
		} `json:"alternativeResults"`
	}
	if err := json.Unmarshal([]byte(out), &set); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if set.BaseScenarioName != "Base Case" {
		t.Errorf("Expected base 'Base Case', got %q", set.BaseScenarioName)
	}
	want := map[string]string{
		"price_double": "26.2",
		"early_action": "12.1",
		"scale_price:pct=25;set_rate:rate=8": "20.5",
	}
	if len(set.AlternativeResults) != len(want) {
		t.Fatalf("Expected %d alternatives, got %d", len(want), len(set.AlternativeResults))
	}
	for _, r := range set.AlternativeResults {
		if want[r.ScenarioName] != r.Liability {
			t.Errorf("%s: liability %s, want %s", r.ScenarioName, r.Liability, want[r.ScenarioName])
		}
	}

	out, err = execute(t, "compare", "--list-templates")
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if !strings.Contains(out, "cbam_alignment") {
		t.Errorf("Expected template list:\n%s", out)
	}

	for _, args := range [][]string{
		{"compare", "--with", "nope"},
		{"compare", "--transform", "set_rate:rate=0"},
		{"compare", "--pathway", "Early Action", "--with", "cbam_alignment"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("Expected an error for %v", args)
		}
	}
}

func TestBreakeven(t *testing.T) {
	out, err := execute(t, "breakeven", "--match-pathway", "BAU")
	if err != nil {
		t.Fatalf("breakeven failed: %v", err)
	}
	for _, want := range []string{"BREAK-EVEN ANALYSIS: ALL PARAMETERS", "$72.00/t", "6.94%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "breakeven", "--pathway", "BAU", "--target", "13.1", "--solve", "rate", "-f", "json")
	if err != nil {
		t.Fatalf("breakeven failed: %v", err)
	}
	var result struct {
		Success             bool   `json:"success"`
		OptimalDiscountRate string `json:"optimal_discount_rate"`
		AchievedLiability   string `json:"achieved_liability"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !result.Success || result.OptimalDiscountRate != "14.4" || result.AchievedLiability != "13.1" {
		t.Errorf("Unexpected result %+v", result)
	}

	for _, args := range [][]string{
		{"breakeven"},
		{"breakeven", "--target", "20", "--match-pathway", "BAU"},
		{"breakeven", "--match-pathway", "Net Zero"},
		{"breakeven", "--target", "20", "--solve", "pathway"},
		{"breakeven", "--target", "20", "--solve", "price", "--max-price", "60"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("Expected an error for %v", args)
		}
	}
}

func TestStakeholders(t *testing.T) {
	out, err := execute(t, "stakeholders", "--pathway", "BAU")
	if err != nil {
		t.Fatalf("stakeholders failed: %v", err)
	}
	for _, want := range []string{"GOVERNMENT", "INDUSTRY", "INVESTOR", "Compliance Cost        $18.9B", "Launch Hybrid ETS by 2028"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "stakeholders", "--view", "investor", "-f", "json")
	if err != nil {
		t.Fatalf("stakeholders failed: %v", err)
	}
	var views []domain.StakeholderView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(views) != 1 || views[0].Stakeholder != domain.StakeholderInvestor {
		t.Errorf("Expected only the investor view, got %+v", views)
	}

	if _, err := execute(t, "stakeholders", "--view", "regulator"); !errors.Is(err, domain.ErrInvalidStakeholder) {
		t.Errorf("Expected ErrInvalidStakeholder, got %v", err)
	}
}

func TestPayback(t *testing.T) {
	out, err := execute(t, "payback")
	if err != nil {
		t.Fatalf("payback failed: %v", err)
	}
	for _, want := range []string{"$15B TRANSITION FUND", "2026", "-$15B", "+$45B", "Back in the black by 2034"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestNonFiniteFlags(t *testing.T) {
	for _, args := range [][]string{
		{"estimate", "--price", "NaN"},
		{"estimate", "--rate", "+Inf"},
		{"monte-carlo", "--price-variance", "NaN"},
		{"monte-carlo", "--runs", "2000000"},
		{"sensitivity", "--range", "NaN"},
		{"breakeven", "--target", "NaN"},
		{"breakeven", "--match-pathway", "BAU", "--max-price", "Inf"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("Expected an error for %v", args)
		}
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", writeConfig(t))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid: 2 scenarios") || !strings.Contains(out, "300 runs") {
		t.Errorf("unexpected validate output:\n%s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("scenarios:\n  - name: X\n    pathway: Sideways\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", bad); !errors.Is(err, domain.ErrInvalidPathway) {
		t.Errorf("Expected ErrInvalidPathway, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "carbonliab dev") {
		t.Errorf("unexpected version output %q", out)
	}
}
