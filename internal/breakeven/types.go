package breakeven

import (
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which scenario parameter the solver moves
type OptimizationTarget string

const (
	OptimizeCarbonPrice  OptimizationTarget = "carbon_price"
	OptimizeDiscountRate OptimizationTarget = "discount_rate"
	OptimizeAll          OptimizationTarget = "all"
)

// OptimizationGoal defines what liability the solver aims for
type OptimizationGoal string

const (
	GoalMatchLiability OptimizationGoal = "match_liability" // Reach Constraints.TargetLiability
	GoalMatchPathway   OptimizationGoal = "match_pathway"   // Reach the liability of Constraints.TargetPathway at the base parameters
)

// ParseTarget accepts the target names used on the command line and in the API.
func ParseTarget(s string) (OptimizationTarget, error) {
	switch s {
	case "carbon_price", "carbonPrice", "price":
		return OptimizeCarbonPrice, nil
	case "discount_rate", "discountRate", "rate":
		return OptimizeDiscountRate, nil
	case "all", "":
		return OptimizeAll, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown optimization target " + s}
}

// Constraints bound the search and carry the goal's target
type Constraints struct {
	// Carbon price bounds, USD per tonne
	MinCarbonPrice *decimal.Decimal `json:"min_carbon_price,omitempty"`
	MaxCarbonPrice *decimal.Decimal `json:"max_carbon_price,omitempty"`

	// Discount rate bounds, percent
	MinDiscountRate *decimal.Decimal `json:"min_discount_rate,omitempty"`
	MaxDiscountRate *decimal.Decimal `json:"max_discount_rate,omitempty"`

	// Liability in USD billions for match_liability
	TargetLiability *decimal.Decimal `json:"target_liability,omitempty"`

	// Comparison pathway for match_pathway
	TargetPathway domain.Pathway `json:"target_pathway,omitempty"`
}

// DefaultConstraints returns bounds wide enough for any plausible policy
// scenario: $0 to $500 per tonne and 1% to 30%.
func DefaultConstraints() Constraints {
	minPrice := decimal.Zero
	maxPrice := decimal.NewFromInt(500)
	minRate := decimal.NewFromInt(1)
	maxRate := decimal.NewFromInt(30)

	return Constraints{
		MinCarbonPrice:  &minPrice,
		MaxCarbonPrice:  &maxPrice,
		MinDiscountRate: &minRate,
		MaxDiscountRate: &maxRate,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Scenario      domain.Scenario    `json:"scenario"`
	Target        OptimizationTarget `json:"target"`
	Goal          OptimizationGoal   `json:"goal"`
	Constraints   Constraints        `json:"constraints"`
	MaxIterations int                `json:"-"`
	Tolerance     decimal.Decimal    `json:"-"` // USD billions
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Break-even parameter, rounded to cents or hundredths of a percent
	OptimalCarbonPrice  *decimal.Decimal `json:"optimal_carbon_price,omitempty"`
	OptimalDiscountRate *decimal.Decimal `json:"optimal_discount_rate,omitempty"`

	// Liabilities in USD billions, rounded to one decimal
	TargetLiability       decimal.Decimal `json:"target_liability"`
	AchievedLiability     decimal.Decimal `json:"achieved_liability"`
	BaseLiability         decimal.Decimal `json:"base_liability"`
	LiabilityDiffFromBase decimal.Decimal `json:"liability_diff_from_base"`

	// Scenario at the break-even point
	Solved domain.Scenario `json:"solved"`
}

// MultiDimensionalResult contains results when solving for several parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance, USD billions
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.001), // $1M
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinCarbonPrice != nil && c.MaxCarbonPrice != nil {
		if c.MinCarbonPrice.GreaterThan(*c.MaxCarbonPrice) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_carbon_price cannot be greater than max_carbon_price",
			}
		}
	}
	if c.MinCarbonPrice != nil && c.MinCarbonPrice.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_carbon_price cannot be negative",
		}
	}

	if c.MinDiscountRate != nil && !c.MinDiscountRate.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_discount_rate must be positive",
			Cause:     domain.ErrDomain,
		}
	}
	if c.MinDiscountRate != nil && c.MaxDiscountRate != nil {
		if c.MinDiscountRate.GreaterThan(*c.MaxDiscountRate) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_discount_rate cannot be greater than max_discount_rate",
			}
		}
	}

	if c.TargetLiability != nil && c.TargetLiability.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_liability cannot be negative",
		}
	}
	if c.TargetPathway != "" {
		if _, ok := domain.PathwayMultiplier(c.TargetPathway); !ok {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "invalid target pathway",
				Cause:     &domain.InvalidPathwayError{Name: string(c.TargetPathway)},
			}
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
