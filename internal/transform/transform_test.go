package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

func TestApplyTransforms_EmptyScenario(t *testing.T) {
	transforms := []ScenarioTransform{
		&ScaleCarbonPrice{Percent: decimal.NewFromInt(10)},
	}

	_, err := ApplyTransforms(domain.Scenario{}, transforms)
	if err == nil {
		t.Error("Expected error for empty scenario, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := domain.DefaultScenario()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result != base {
		t.Errorf("Expected unchanged scenario, got %s", result)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	transforms := []ScenarioTransform{
		&ScaleCarbonPrice{Percent: decimal.NewFromInt(10)},
		nil,
	}

	_, err := ApplyTransforms(domain.DefaultScenario(), transforms)
	if err == nil {
		t.Fatal("Expected error for nil transform, got nil")
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Errorf("Expected error to name the index, got: %v", err)
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := domain.DefaultScenario()
	transforms := []ScenarioTransform{
		&ScaleCarbonPrice{Percent: decimal.NewFromInt(50)},
		&AdjustDiscountRate{Points: decimal.NewFromInt(-2)},
		&ShiftPathway{Steps: -1},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.CarbonPrice().String() != "75" {
		t.Errorf("Expected price 75, got %s", result.CarbonPrice())
	}
	if result.DiscountRate().String() != "8" {
		t.Errorf("Expected rate 8, got %s", result.DiscountRate())
	}
	if result.Pathway() != domain.PathwayModerate {
		t.Errorf("Expected Moderate, got %s", result.Pathway())
	}

	// The base scenario is a value and must be untouched
	if base.CarbonPrice().String() != "50" || base.Pathway() != domain.PathwayAggressive {
		t.Errorf("Base scenario was modified: %s", base)
	}
}

func TestApplyTransforms_ValidationStopsSequence(t *testing.T) {
	transforms := []ScenarioTransform{
		&AdjustDiscountRate{Points: decimal.NewFromInt(-4)},
		&AdjustDiscountRate{Points: decimal.NewFromInt(-6)},
	}

	_, err := ApplyTransforms(domain.DefaultScenario(), transforms)
	if err == nil {
		t.Fatal("Expected error once the rate reaches zero")
	}
	if !errors.Is(err, domain.ErrDomain) {
		t.Errorf("Expected ErrDomain in chain, got: %v", err)
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if te.TransformName != "adjust_rate" || te.Operation != "validate" {
		t.Errorf("Unexpected transform error %+v", te)
	}
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name      string
		transform ScenarioTransform
		wantPrice string
		wantRate  string
		wantPath  domain.Pathway
	}{
		{"set price", &SetCarbonPrice{Price: decimal.NewFromInt(120)}, "120", "10", domain.PathwayAggressive},
		{"scale price down", &ScaleCarbonPrice{Percent: decimal.NewFromInt(-20)}, "40", "10", domain.PathwayAggressive},
		{"scale price to zero", &ScaleCarbonPrice{Percent: decimal.NewFromInt(-100)}, "0", "10", domain.PathwayAggressive},
		{"match market", &MatchMarketPrice{Market: "UK ETS"}, "42.1", "10", domain.PathwayAggressive},
		{"set rate", &SetDiscountRate{Rate: decimal.NewFromFloat(7.5)}, "50", "7.5", domain.PathwayAggressive},
		{"adjust rate", &AdjustDiscountRate{Points: decimal.NewFromInt(3)}, "50", "13", domain.PathwayAggressive},
		{"set pathway", &SetPathway{Pathway: domain.PathwayBAU}, "50", "10", domain.PathwayBAU},
		{"shift forward", &ShiftPathway{Steps: 1}, "50", "10", domain.PathwayEarlyAction},
		{"shift back", &ShiftPathway{Steps: -2}, "50", "10", domain.PathwayBAU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := domain.DefaultScenario()
			if err := tt.transform.Validate(base); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			got, err := tt.transform.Apply(base)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got.CarbonPrice().String() != tt.wantPrice {
				t.Errorf("price = %s, want %s", got.CarbonPrice(), tt.wantPrice)
			}
			if got.DiscountRate().String() != tt.wantRate {
				t.Errorf("rate = %s, want %s", got.DiscountRate(), tt.wantRate)
			}
			if got.Pathway() != tt.wantPath {
				t.Errorf("pathway = %s, want %s", got.Pathway(), tt.wantPath)
			}
			if tt.transform.Name() == "" || tt.transform.Description() == "" {
				t.Error("Expected name and description")
			}
		})
	}
}

func TestTransforms_ValidationErrors(t *testing.T) {
	base := domain.DefaultScenario()
	tests := []struct {
		name      string
		transform ScenarioTransform
	}{
		{"negative price", &SetCarbonPrice{Price: decimal.NewFromInt(-1)}},
		{"scale below -100%", &ScaleCarbonPrice{Percent: decimal.NewFromInt(-101)}},
		{"unknown market", &MatchMarketPrice{Market: "Mars"}},
		{"zero rate", &SetDiscountRate{Rate: decimal.Zero}},
		{"rate adjusted to zero", &AdjustDiscountRate{Points: decimal.NewFromInt(-10)}},
		{"invalid pathway", &SetPathway{Pathway: "Net Zero"}},
		{"shift past Early Action", &ShiftPathway{Steps: 2}},
		{"shift past BAU", &ShiftPathway{Steps: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var te *TransformError
			if !errors.As(err, &te) {
				t.Errorf("Expected TransformError, got %T", err)
			}
		})
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		transform ScenarioTransform
		want      string
	}{
		{&SetCarbonPrice{Price: decimal.NewFromInt(80)}, "Set carbon price to $80/t"},
		{&ScaleCarbonPrice{Percent: decimal.NewFromInt(25)}, "Change carbon price by +25%"},
		{&ScaleCarbonPrice{Percent: decimal.NewFromInt(-25)}, "Change carbon price by -25%"},
		{&AdjustDiscountRate{Points: decimal.NewFromInt(-3)}, "Lower discount rate by 3 points"},
		{&AdjustDiscountRate{Points: decimal.NewFromInt(2)}, "Raise discount rate by 2 points"},
		{&ShiftPathway{Steps: -1}, "Slow the transition by 1 pathway step(s)"},
		{&SetPathway{Pathway: domain.PathwayEarlyAction}, "Switch to the Early Action pathway"},
	}

	for _, tt := range tests {
		if got := tt.transform.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("set_rate", "validate", "bad rate", cause)

	if err.Error() != "transform set_rate (validate): bad rate: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	err = NewTransformError("set_rate", "validate", "bad rate", nil)
	if err.Error() != "transform set_rate (validate): bad rate" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
