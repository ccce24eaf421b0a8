package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"gopkg.in/yaml.v3"
)

// Configuration is the on-disk scenario file.
type Configuration struct {
	Scenarios   []ScenarioInput  `yaml:"scenarios"`
	Simulation  SimulationInput  `yaml:"simulation"`
	Sensitivity SensitivityInput `yaml:"sensitivity"`
}

// ScenarioInput is one named scenario. Omitted fields take the base case
// values ($50/t, 10%, Aggressive).
type ScenarioInput struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	CarbonPrice  *float64 `yaml:"carbon_price"`
	DiscountRate *float64 `yaml:"discount_rate"`
	Pathway      string   `yaml:"pathway"`
}

// SimulationInput configures the Monte Carlo engine. Zero values fall back
// to the engine defaults.
type SimulationInput struct {
	Runs             int      `yaml:"runs"`
	PriceVariance    *float64 `yaml:"price_variance"`
	EmissionVariance *float64 `yaml:"emission_variance"`
	Seed             *int64   `yaml:"seed"`
	PercentileMethod string   `yaml:"percentile_method"`
}

// SensitivityInput configures the default sensitivity sweep.
type SensitivityInput struct {
	Factor   string   `yaml:"factor"`
	RangePct *float64 `yaml:"range_pct"`
}

// NamedScenario is a validated scenario with its label.
type NamedScenario struct {
	Name        string
	Description string
	Scenario    domain.Scenario
}

// ScenarioSet is a fully resolved configuration ready to drive the engine.
type ScenarioSet struct {
	Scenarios         []NamedScenario
	MonteCarlo        calculation.MonteCarloConfig
	Seed              *int64
	SensitivityFactor domain.SensitivityFactor
	SensitivityRange  float64
}

// Base returns the first scenario, or the default scenario when the set is empty.
func (s *ScenarioSet) Base() NamedScenario {
	if s == nil || len(s.Scenarios) == 0 {
		return NamedScenario{Name: "Base Case", Scenario: domain.DefaultScenario()}
	}
	return s.Scenarios[0]
}

// Lookup finds a scenario by name.
func (s *ScenarioSet) Lookup(name string) (NamedScenario, bool) {
	if s == nil {
		return NamedScenario{}, false
	}
	for _, ns := range s.Scenarios {
		if ns.Name == name {
			return ns, true
		}
	}
	return NamedScenario{}, false
}

// NewEngine builds a CarbonEngine configured from the set's simulation block.
func (s *ScenarioSet) NewEngine() *calculation.CarbonEngine {
	if s == nil {
		return calculation.NewCarbonEngine()
	}
	engine := calculation.NewCarbonEngineWithConfig(s.MonteCarlo)
	if s.Seed != nil {
		engine.MonteCarlo.WithSeed(*s.Seed)
	}
	return engine
}

// DefaultScenarioSet is the set used when no file is given: the base case
// alone with default simulation settings.
func DefaultScenarioSet() *ScenarioSet {
	return &ScenarioSet{
		Scenarios:         []NamedScenario{{Name: "Base Case", Scenario: domain.DefaultScenario()}},
		MonteCarlo:        calculation.DefaultMonteCarloConfig(),
		SensitivityFactor: domain.FactorCarbonPrice,
		SensitivityRange:  calculation.DefaultSensitivityRangePct,
	}
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and resolves a YAML scenario file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	set, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return set, nil
}

// Parse decodes, validates and resolves scenario YAML
func (ip *InputParser) Parse(data []byte) (*ScenarioSet, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return ip.Resolve(&config)
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	// Validate scenarios; names must be unique
	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	// Validate optional sections
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if err := ip.validateSensitivity(&config.Sensitivity); err != nil {
		return fmt.Errorf("sensitivity validation failed: %w", err)
	}
	return nil
}

// validateScenario validates a single scenario entry
func (ip *InputParser) validateScenario(s *ScenarioInput) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Pathway != "" {
		if _, err := domain.ParsePathway(s.Pathway); err != nil {
			return err
		}
	}
	// Reject NaN and infinities before range checks
	if s.CarbonPrice != nil {
		if err := domain.CheckFinite("carbon price", *s.CarbonPrice); err != nil {
			return err
		}
	}
	if s.DiscountRate != nil {
		if err := domain.CheckFinite("discount rate", *s.DiscountRate); err != nil {
			return err
		}
	}
	if s.CarbonPrice != nil && *s.CarbonPrice < 0 {
		return fmt.Errorf("carbon price cannot be negative, got %g", *s.CarbonPrice)
	}
	if s.DiscountRate != nil && *s.DiscountRate <= 0 {
		return &domain.DomainError{Field: "discount rate", Value: fmt.Sprintf("%g", *s.DiscountRate)}
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *SimulationInput) error {
	// zero runs means the default
	if sim.Runs < 0 || sim.Runs > calculation.MaxSimulations {
		return fmt.Errorf("%w: got %d, want 0 to %d", domain.ErrInvalidSimulationCount, sim.Runs, calculation.MaxSimulations)
	}
	// a variance of 2 or more can drive a factor to zero or below; NaN fails both comparisons
	if sim.PriceVariance != nil && !(*sim.PriceVariance >= 0 && *sim.PriceVariance < calculation.MaxVariance) {
		return fmt.Errorf("price variance must be in [0, 2), got %g", *sim.PriceVariance)
	}
	if sim.EmissionVariance != nil && !(*sim.EmissionVariance >= 0 && *sim.EmissionVariance < calculation.MaxVariance) {
		return fmt.Errorf("emission variance must be in [0, 2), got %g", *sim.EmissionVariance)
	}
	if _, err := calculation.ParsePercentileMethod(sim.PercentileMethod); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateSensitivity(sens *SensitivityInput) error {
	if sens.Factor != "" {
		if _, err := domain.ParseSensitivityFactor(sens.Factor); err != nil {
			return err
		}
	}
	if sens.RangePct != nil && !(*sens.RangePct > 0 && *sens.RangePct < 100) {
		return fmt.Errorf("range_pct must be in (0, 100), got %g", *sens.RangePct)
	}
	return nil
}

// Resolve applies defaults to a validated configuration
func (ip *InputParser) Resolve(config *Configuration) (*ScenarioSet, error) {
	set := DefaultScenarioSet()
	set.Scenarios = make([]NamedScenario, 0, len(config.Scenarios))

	for _, in := range config.Scenarios {
		price, rate, pathway := domain.DefaultCarbonPrice, domain.DefaultDiscountRate, string(domain.DefaultPathway)
		if in.CarbonPrice != nil {
			price = *in.CarbonPrice
		}
		if in.DiscountRate != nil {
			rate = *in.DiscountRate
		}
		if in.Pathway != "" {
			pathway = in.Pathway
		}
		scenario, err := domain.NewScenario(price, rate, pathway)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", in.Name, err)
		}
		set.Scenarios = append(set.Scenarios, NamedScenario{Name: in.Name, Description: in.Description, Scenario: scenario})
	}

	// Simulation settings
	sim := config.Simulation
	if sim.Runs > 0 {
		set.MonteCarlo.NumSimulations = sim.Runs
	}
	if sim.PriceVariance != nil {
		set.MonteCarlo.PriceVariance = *sim.PriceVariance
	}
	if sim.EmissionVariance != nil {
		set.MonteCarlo.EmissionVariance = *sim.EmissionVariance
	}
	method, err := calculation.ParsePercentileMethod(sim.PercentileMethod)
	if err != nil {
		return nil, err
	}
	set.MonteCarlo.Percentile = method
	set.Seed = sim.Seed

	// Sensitivity settings
	if config.Sensitivity.Factor != "" {
		factor, err := domain.ParseSensitivityFactor(config.Sensitivity.Factor)
		if err != nil {
			return nil, err
		}
		set.SensitivityFactor = factor
	}
	if config.Sensitivity.RangePct != nil {
		set.SensitivityRange = *config.Sensitivity.RangePct
	}

	return set, nil
}
