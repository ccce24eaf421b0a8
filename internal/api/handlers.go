package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/carbonliab/internal/breakeven"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/shopspring/decimal"
)

// scenarioFromQuery reads price, rate and pathway, defaulting each to the base case.
func scenarioFromQuery(c *gin.Context) (domain.Scenario, error) {
	price, err := floatQuery(c, "price", domain.DefaultCarbonPrice)
	if err != nil {
		return domain.Scenario{}, err
	}
	rate, err := floatQuery(c, "rate", domain.DefaultDiscountRate)
	if err != nil {
		return domain.Scenario{}, err
	}
	return domain.NewScenario(price, rate, c.DefaultQuery("pathway", string(domain.DefaultPathway)))
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a finite number", errBadRequest, key, raw)
	}
	return v, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", errBadRequest, key, raw)
	}
	return v, nil
}

var errBadRequest = errors.New("bad request")

// respondError maps engine errors onto status codes: caller mistakes are 400,
// a cancelled request 503, anything else 500.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var beErr *breakeven.BreakEvenError
	switch {
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	case errors.As(err, &beErr):
		status = http.StatusBadRequest
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidPathway),
		errors.Is(err, domain.ErrDomain),
		errors.Is(err, domain.ErrInvalidFactor),
		errors.Is(err, domain.ErrInvalidSimulationCount),
		errors.Is(err, domain.ErrInvalidStakeholder):
		status = http.StatusBadRequest
	default:
		s.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleLiability(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	liability, err := calculation.ScenarioLiability(scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scenario":          scenario,
		"liability":         liability,
		"excessOverBasePct": calculation.ExcessOverBasePct(liability),
	})
}

func (s *Server) handleMonteCarlo(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	cfg := s.engine.MonteCarlo.Config()
	n, err := intQuery(c, "n", cfg.NumSimulations)
	if err != nil {
		s.respondError(c, err)
		return
	}
	pv, err := floatQuery(c, "priceVariance", cfg.PriceVariance)
	if err != nil {
		s.respondError(c, err)
		return
	}
	ev, err := floatQuery(c, "emissionVariance", cfg.EmissionVariance)
	if err != nil {
		s.respondError(c, err)
		return
	}
	bins, err := intQuery(c, "bins", 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if bins < 0 || bins > domain.MaxHistogramBins {
		s.respondError(c, fmt.Errorf("%w: bins must be 0 to %d, got %d", errBadRequest, domain.MaxHistogramBins, bins))
		return
	}

	result, err := s.engine.RunMonteCarlo(c.Request.Context(), scenario, n, pv, ev)
	if err != nil {
		s.respondError(c, err)
		return
	}

	histogram := result.Histogram(bins)
	if c.Query("samples") != "true" {
		result.Samples = nil
	}
	c.JSON(http.StatusOK, gin.H{
		"scenario":  scenario,
		"result":    result,
		"histogram": histogram,
	})
}

func (s *Server) handleSensitivity(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rangePct, err := floatQuery(c, "range", calculation.DefaultSensitivityRangePct)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rows, err := s.engine.RunSensitivity(scenario, c.DefaultQuery("factor", string(domain.FactorCarbonPrice)), rangePct)
	if err != nil {
		s.respondError(c, err)
		return
	}
	tornado, err := s.engine.Sensitivity.Tornado(scenario, rangePct)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scenario": scenario,
		"rows":     rows,
		"tornado":  tornado,
	})
}

func (s *Server) handleInsights(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	insights, err := s.engine.GenerateInsights(scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"insights":   insights,
		"alertCount": calculation.AlertCount(insights),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	summary, err := s.engine.Summarize(c.Request.Context(), scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleCompare(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	compSet, err := s.compare.ComparePathways(c.Request.Context(), scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, compSet)
}

// handleBreakeven solves for the price or rate at which liability reaches
// target (USD billions) or the liability of the match pathway.
func (s *Server) handleBreakeven(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	target, err := breakeven.ParseTarget(c.DefaultQuery("solve", "all"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var constraints breakeven.Constraints
	var goal breakeven.OptimizationGoal
	rawTarget, hasTarget := c.GetQuery("target")
	match, hasMatch := c.GetQuery("match")
	switch {
	case hasTarget && hasMatch:
		s.respondError(c, fmt.Errorf("%w: target and match are mutually exclusive", errBadRequest))
		return
	case hasTarget:
		t, err := decimal.NewFromString(rawTarget)
		if err != nil {
			s.respondError(c, fmt.Errorf("%w: target=%q is not a number", errBadRequest, rawTarget))
			return
		}
		constraints.TargetLiability = &t
		goal = breakeven.GoalMatchLiability
	case hasMatch:
		p, err := domain.ParsePathway(match)
		if err != nil {
			s.respondError(c, err)
			return
		}
		constraints.TargetPathway = p
		goal = breakeven.GoalMatchPathway
	default:
		s.respondError(c, fmt.Errorf("%w: one of target or match is required", errBadRequest))
		return
	}

	ctx := c.Request.Context()
	if target == breakeven.OptimizeAll {
		md, err := s.solver.OptimizeMultiDimensional(ctx, scenario, constraints, goal)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, md)
		return
	}

	result, err := s.solver.Optimize(ctx, breakeven.OptimizationRequest{
		Scenario:    scenario,
		Target:      target,
		Goal:        goal,
		Constraints: constraints,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFacilities(c *gin.Context) {
	ownership := domain.Ownership(c.Query("type"))
	if ownership != "" && ownership != domain.OwnershipPSU && ownership != domain.OwnershipPrivate {
		s.respondError(c, fmt.Errorf("%w: unknown facility type %q", errBadRequest, ownership))
		return
	}
	risk := domain.RiskGrade(c.Query("risk"))
	switch risk {
	case "", domain.RiskAAA, domain.RiskA, domain.RiskBBB, domain.RiskBB, domain.RiskB:
	default:
		s.respondError(c, fmt.Errorf("%w: unknown risk grade %q", errBadRequest, risk))
		return
	}

	facilities := s.engine.ListFacilities(ownership, risk)
	c.JSON(http.StatusOK, gin.H{
		"count":      len(facilities),
		"facilities": facilities,
	})
}

func (s *Server) handleMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"markets": registry.MarketPrices()})
}

func (s *Server) handleGlossary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"glossary": registry.Glossary()})
}

func (s *Server) handlePathways(c *gin.Context) {
	type pathwayView struct {
		Name       domain.Pathway `json:"name"`
		Multiplier string         `json:"multiplier"`
	}
	out := make([]pathwayView, 0, len(domain.Pathways()))
	for _, p := range domain.Pathways() {
		m, _ := domain.PathwayMultiplier(p)
		out = append(out, pathwayView{Name: p, Multiplier: m.StringFixed(2)})
	}
	c.JSON(http.StatusOK, gin.H{"pathways": out})
}

// handleStakeholders returns every perspective, or one with ?view=.
func (s *Server) handleStakeholders(c *gin.Context) {
	scenario, err := scenarioFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	views, err := s.engine.StakeholderViews(scenario)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if name := c.Query("view"); name != "" {
		want, err := domain.ParseStakeholder(name)
		if err != nil {
			s.respondError(c, err)
			return
		}
		for _, v := range views {
			if v.Stakeholder == want {
				views = []domain.StakeholderView{v}
				break
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"scenario":     scenario,
		"stakeholders": views,
	})
}

func (s *Server) handlePayback(c *gin.Context) {
	year, _ := registry.PaybackYear()
	c.JSON(http.StatusOK, gin.H{
		"fund":        registry.TransitionFundBillions,
		"paybackYear": year,
		"schedule":    registry.PaybackSchedule(),
	})
}
