package calculation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// Default Monte Carlo settings.
const (
	DefaultSimulations      = 1000
	DefaultPriceVariance    = 0.6
	DefaultEmissionVariance = 0.4

	// MaxSimulations bounds the draw count of one run; samples are held in memory.
	MaxSimulations = 1_000_000
	// MaxVariance is exclusive: at 2 a factor can reach zero.
	MaxVariance = 2.0
)

// cancellation is checked once per this many draws
const ctxCheckInterval = 4096

// MonteCarloConfig holds configuration for liability Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations int

	// Full width of the uniform band around 1.0 applied to each factor:
	// a variance of 0.6 draws factors in [0.7, 1.3).
	PriceVariance    float64
	EmissionVariance float64

	Percentile PercentileMethod
}

// DefaultMonteCarloConfig returns 1000 draws, 0.6 price and 0.4 emission variance,
// nearest-rank percentiles.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations:   DefaultSimulations,
		PriceVariance:    DefaultPriceVariance,
		EmissionVariance: DefaultEmissionVariance,
		Percentile:       PercentileNearestRank,
	}
}

// MonteCarloEngine samples a randomized variant of the liability formula.
// Configure it before first use; Run is safe for concurrent use afterwards.
type MonteCarloEngine struct {
	config    MonteCarloConfig
	newSource SourceFactory
	logger    Logger
}

// NewMonteCarloEngine creates an unseeded engine with the default configuration
func NewMonteCarloEngine() *MonteCarloEngine {
	return NewMonteCarloEngineWithConfig(DefaultMonteCarloConfig())
}

// NewMonteCarloEngineWithConfig creates an unseeded engine with cfg
func NewMonteCarloEngineWithConfig(cfg MonteCarloConfig) *MonteCarloEngine {
	if cfg.Percentile == "" {
		cfg.Percentile = PercentileNearestRank
	}
	return &MonteCarloEngine{
		config:    cfg,
		newSource: UnseededSourceFactory,
		logger:    NopLogger{},
	}
}

// WithSeed makes every run start from seed.
func (mce *MonteCarloEngine) WithSeed(seed int64) *MonteCarloEngine {
	mce.newSource = SeededSourceFactory(seed)
	return mce
}

// WithSource routes every run through src. Access is serialised, so src
// may be shared with other engines.
func (mce *MonteCarloEngine) WithSource(src RandomSource) *MonteCarloEngine {
	mce.newSource = SharedSourceFactory(src)
	return mce
}

// WithSourceFactory sets how each run obtains its generator.
func (mce *MonteCarloEngine) WithSourceFactory(f SourceFactory) *MonteCarloEngine {
	if f == nil {
		f = UnseededSourceFactory
	}
	mce.newSource = f
	return mce
}

// SetLogger sets the logger; nil installs NopLogger.
func (mce *MonteCarloEngine) SetLogger(l Logger) {
	mce.logger = orNop(l)
}

// Config returns the engine configuration.
func (mce *MonteCarloEngine) Config() MonteCarloConfig {
	return mce.config
}

// Run simulates the scenario with the engine's configured draw count and variances.
func (mce *MonteCarloEngine) Run(ctx context.Context, scenario domain.Scenario) (*domain.MonteCarloResult, error) {
	return mce.Simulate(ctx, scenario, mce.config.NumSimulations, mce.config.PriceVariance, mce.config.EmissionVariance)
}

// Simulate draws n samples of
//
//	13.1 * (price/50) * priceFactor * multiplier * emissionFactor * (10/rate)
//
// with priceFactor = 1 + (U-0.5)*priceVariance and emissionFactor = 1 + (U'-0.5)*emissionVariance
// for independent uniform U, U'. It returns percentiles, mean and population
// standard deviation rounded to one decimal, and the sorted samples.
func (mce *MonteCarloEngine) Simulate(ctx context.Context, scenario domain.Scenario, n int, priceVariance, emissionVariance float64) (*domain.MonteCarloResult, error) {
	if n < 1 || n > MaxSimulations {
		return nil, fmt.Errorf("%w: got %d, want 1 to %d", domain.ErrInvalidSimulationCount, n, MaxSimulations)
	}
	if err := checkVariance("price variance", priceVariance); err != nil {
		return nil, err
	}
	if err := checkVariance("emission variance", emissionVariance); err != nil {
		return nil, err
	}
	if !scenario.DiscountRate().IsPositive() {
		return nil, &domain.DomainError{Field: "discount rate", Value: scenario.DiscountRate().String()}
	}
	mult, ok := domain.PathwayMultiplier(scenario.Pathway())
	if !ok {
		return nil, &domain.InvalidPathwayError{Name: string(scenario.Pathway())}
	}

	price := scenario.CarbonPrice().InexactFloat64()
	rate := scenario.DiscountRate().InexactFloat64()
	m := mult.InexactFloat64()

	src := mce.newSource()
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("monte carlo cancelled after %d draws: %w", i, err)
			}
		}
		priceFactor := 1 + (src.Float64()-0.5)*priceVariance
		emissionFactor := 1 + (src.Float64()-0.5)*emissionVariance
		samples[i] = BaseLiabilityBillions * (price / 50) * priceFactor * m * emissionFactor * (10 / rate)
	}
	sort.Float64s(samples)

	mean, std := meanStd(samples)
	for _, v := range []float64{samples[0], samples[n-1], mean, std} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, &domain.DomainError{Field: "simulated liability", Value: scenario.String(), Reason: "overflows float64"}
		}
	}
	method := mce.config.Percentile
	result := &domain.MonteCarloResult{
		Simulations: n,
		P5:          round1(percentile(samples, 5, method)),
		P25:         round1(percentile(samples, 25, method)),
		P50:         round1(percentile(samples, 50, method)),
		P75:         round1(percentile(samples, 75, method)),
		P95:         round1(percentile(samples, 95, method)),
		Mean:        round1(mean),
		Std:         round1(std),
		Samples:     samples,
	}

	mce.logger.Debugf("monte carlo %s: n=%d p5=%s p50=%s p95=%s mean=%s",
		scenario, n, result.P5, result.P50, result.P95, result.Mean)
	return result, nil
}

func checkVariance(field string, v float64) error {
	if err := domain.CheckFinite(field, v); err != nil {
		return err
	}
	if v < 0 || v >= MaxVariance {
		return &domain.DomainError{Field: field, Value: fmt.Sprintf("%g", v), Reason: "must be in [0, 2)"}
	}
	return nil
}

func round1(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}
