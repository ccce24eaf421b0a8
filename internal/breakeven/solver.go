// Package breakeven solves for the carbon price or discount rate at which a
// scenario's liability reaches a target.
package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two          = decimal.NewFromInt(2)
	minBracket   = decimal.NewFromFloat(0.000001)
	paramPlaces  = int32(2)
	reportPlaces = int32(1)
)

// Solver finds break-even parameters by bisection over the unrounded
// liability formula.
type Solver struct {
	Options SolverOptions
	logger  calculation.Logger
}

// NewSolver creates a new break-even solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{
		Options: options,
		logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// SetLogger sets the logger; nil installs NopLogger.
func (s *Solver) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.logger = l
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	// Apply defaults
	req.Constraints = withDefaultBounds(req.Constraints)
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	// Resolve the liability we are solving for
	target, err := s.resolveTarget(req)
	if err != nil {
		return nil, err
	}

	switch req.Target {
	case OptimizeCarbonPrice:
		return s.optimizeCarbonPrice(ctx, req, target)
	case OptimizeDiscountRate:
		return s.optimizeDiscountRate(ctx, req, target)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// resolveTarget turns the goal into a raw liability in USD billions
func (s *Solver) resolveTarget(req OptimizationRequest) (decimal.Decimal, error) {
	switch req.Goal {
	case GoalMatchLiability:
		if req.Constraints.TargetLiability == nil {
			return decimal.Zero, &BreakEvenError{
				Operation: "resolve_target",
				Message:   "match_liability requires target_liability",
			}
		}
		return *req.Constraints.TargetLiability, nil

	case GoalMatchPathway:
		if req.Constraints.TargetPathway == "" {
			return decimal.Zero, &BreakEvenError{
				Operation: "resolve_target",
				Message:   "match_pathway requires target_pathway",
			}
		}
		sc := req.Scenario
		target, err := calculation.RawLiability(sc.CarbonPrice(), sc.DiscountRate(), req.Constraints.TargetPathway)
		if err != nil {
			return decimal.Zero, &BreakEvenError{
				Operation: "resolve_target",
				Message:   "failed to evaluate target pathway",
				Cause:     err,
			}
		}
		return target, nil

	default:
		return decimal.Zero, &BreakEvenError{
			Operation: "resolve_target",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}
}

// optimizeCarbonPrice finds the price at which liability reaches target.
// Liability rises linearly with price.
func (s *Solver) optimizeCarbonPrice(ctx context.Context, req OptimizationRequest, target decimal.Decimal) (*OptimizationResult, error) {
	sc := req.Scenario
	eval := func(price decimal.Decimal) (decimal.Decimal, error) {
		return calculation.RawLiability(price, sc.DiscountRate(), sc.Pathway())
	}

	// Search the price bounds
	b, err := s.bisect(ctx, req, "optimize_carbon_price", *req.Constraints.MinCarbonPrice, *req.Constraints.MaxCarbonPrice, target, eval)
	if err != nil {
		return nil, err
	}

	price := b.x.Round(paramPlaces)
	result, err := s.buildResult(req, target, b, sc.WithCarbonPrice(price))
	if err != nil {
		return nil, err
	}
	result.OptimalCarbonPrice = &price
	return result, nil
}

// optimizeDiscountRate finds the rate at which liability reaches target.
// Liability falls as the rate rises.
func (s *Solver) optimizeDiscountRate(ctx context.Context, req OptimizationRequest, target decimal.Decimal) (*OptimizationResult, error) {
	sc := req.Scenario
	eval := func(rate decimal.Decimal) (decimal.Decimal, error) {
		return calculation.RawLiability(sc.CarbonPrice(), rate, sc.Pathway())
	}

	// Search the rate bounds
	b, err := s.bisect(ctx, req, "optimize_discount_rate", *req.Constraints.MinDiscountRate, *req.Constraints.MaxDiscountRate, target, eval)
	if err != nil {
		return nil, err
	}

	rate := b.x.Round(paramPlaces)
	result, err := s.buildResult(req, target, b, sc.WithDiscountRate(rate))
	if err != nil {
		return nil, err
	}
	result.OptimalDiscountRate = &rate
	return result, nil
}

type bisection struct {
	x          decimal.Decimal
	iterations int
	converged  bool
	info       string
}

// bisect searches [lo, hi] for x with |eval(x) - target| < tolerance. eval
// must be monotonic over the bracket; direction is taken from the endpoints.
func (s *Solver) bisect(ctx context.Context, req OptimizationRequest, op string, lo, hi, target decimal.Decimal, eval func(decimal.Decimal) (decimal.Decimal, error)) (bisection, error) {
	fLo, err := eval(lo)
	if err != nil {
		return bisection{}, &BreakEvenError{Operation: op, Message: "failed to evaluate lower bound", Cause: err}
	}
	fHi, err := eval(hi)
	if err != nil {
		return bisection{}, &BreakEvenError{Operation: op, Message: "failed to evaluate upper bound", Cause: err}
	}

	// Endpoints may already meet the target
	if fLo.Sub(target).Abs().LessThan(req.Tolerance) {
		return bisection{x: lo, converged: true, info: "Lower bound meets target"}, nil
	}
	if fHi.Sub(target).Abs().LessThan(req.Tolerance) {
		return bisection{x: hi, converged: true, info: "Upper bound meets target"}, nil
	}

	// Target must lie between the endpoint liabilities
	low, high := decimal.Min(fLo, fHi), decimal.Max(fLo, fHi)
	if target.LessThan(low) || target.GreaterThan(high) {
		return bisection{}, &BreakEvenError{
			Operation: op,
			Message: fmt.Sprintf("target $%sB is outside the reachable range $%sB to $%sB for bounds [%s, %s]",
				target.StringFixed(1), low.StringFixed(1), high.StringFixed(1), lo.String(), hi.String()),
		}
	}
	increasing := fHi.GreaterThan(fLo)

	var mid decimal.Decimal
	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return bisection{}, ctx.Err()
		default:
		}

		mid = lo.Add(hi).Div(two)
		v, err := eval(mid)
		if err != nil {
			return bisection{}, &BreakEvenError{Operation: op, Message: "failed to evaluate liability", Cause: err}
		}

		diff := v.Sub(target)
		if diff.Abs().LessThan(req.Tolerance) {
			s.logger.Debugf("%s: converged at %s after %d iterations", op, mid.StringFixed(4), iterations)
			return bisection{
				x:          mid,
				iterations: iterations,
				converged:  true,
				info:       fmt.Sprintf("Converged to target within $%sB", req.Tolerance.String()),
			}, nil
		}

		// Adjust bounds
		if diff.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}

		// Bracket collapsed
		if hi.Sub(lo).LessThan(minBracket) {
			return bisection{x: mid, iterations: iterations, converged: true, info: "Bisection converged"}, nil
		}
	}

	s.logger.Warnf("%s: no convergence after %d iterations", op, req.MaxIterations)
	return bisection{
		x:          mid,
		iterations: iterations,
		info:       fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations),
	}, nil
}

func (s *Solver) buildResult(req OptimizationRequest, target decimal.Decimal, b bisection, solved domain.Scenario) (*OptimizationResult, error) {
	base, err := calculation.ScenarioLiability(req.Scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "build_result", Message: "failed to evaluate base scenario", Cause: err}
	}
	achieved, err := calculation.ScenarioLiability(solved)
	if err != nil {
		return nil, &BreakEvenError{Operation: "build_result", Message: "failed to evaluate solved scenario", Cause: err}
	}

	return &OptimizationResult{
		Request:               req,
		Success:               b.converged,
		Iterations:            b.iterations,
		ConvergenceInfo:       b.info,
		TargetLiability:       target.Round(reportPlaces),
		AchievedLiability:     achieved,
		BaseLiability:         base,
		LiabilityDiffFromBase: achieved.Sub(base),
		Solved:                solved,
	}, nil
}

func withDefaultBounds(c Constraints) Constraints {
	def := DefaultConstraints()
	if c.MinCarbonPrice == nil {
		c.MinCarbonPrice = def.MinCarbonPrice
	}
	if c.MaxCarbonPrice == nil {
		c.MaxCarbonPrice = def.MaxCarbonPrice
	}
	if c.MinDiscountRate == nil {
		c.MinDiscountRate = def.MinDiscountRate
	}
	if c.MaxDiscountRate == nil {
		c.MaxDiscountRate = def.MaxDiscountRate
	}
	return c
}
