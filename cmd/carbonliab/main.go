package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath   string
	scenarioName string
	flagPrice    float64
	flagRate     float64
	flagPathway  string
	flagSeed     int64
	outputFormat string
	debugMode    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "carbonliab",
	Short: "Carbon liability engine for refinery portfolios",
	Long: `Estimate, simulate and stress-test the carbon liability of a refinery
portfolio under different carbon price, discount rate and decarbonization
pathway assumptions.

Scenarios come from the --price/--rate/--pathway flags, or from a YAML
scenario file given with --config (optionally picking one with --scenario).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if debugMode {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML scenario file")
	flags.StringVarP(&scenarioName, "scenario", "s", "", "Scenario name from the config file (default: the first)")
	flags.Float64Var(&flagPrice, "price", domain.DefaultCarbonPrice, "Carbon price in USD per tonne CO2")
	flags.Float64Var(&flagRate, "rate", domain.DefaultDiscountRate, "Discount rate in percent")
	flags.StringVar(&flagPathway, "pathway", string(domain.DefaultPathway), "Pathway: BAU, Moderate, Aggressive or Early Action")
	flags.Int64Var(&flagSeed, "seed", 0, "Seed the Monte Carlo generator for reproducible runs")
	flags.StringVarP(&outputFormat, "format", "f", "console", "Output format")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// loadScenarioSet reads --config, or returns the base case alone.
func loadScenarioSet() (*config.ScenarioSet, error) {
	if configPath == "" {
		return config.DefaultScenarioSet(), nil
	}
	set, err := config.NewInputParser().LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scenario file", zap.String("path", configPath), zap.Int("scenarios", len(set.Scenarios)))
	return set, nil
}

// resolveScenario picks the scenario named by --scenario (or the set's
// first) and applies any explicitly given --price, --rate and --pathway.
func resolveScenario(cmd *cobra.Command, set *config.ScenarioSet) (config.NamedScenario, error) {
	ns := set.Base()
	if scenarioName != "" {
		found, ok := set.Lookup(scenarioName)
		if !ok {
			return config.NamedScenario{}, fmt.Errorf("scenario %q not found", scenarioName)
		}
		ns = found
	}

	flags := cmd.Flags()
	if !flags.Changed("price") && !flags.Changed("rate") && !flags.Changed("pathway") {
		return ns, nil
	}

	price, _ := ns.Scenario.CarbonPrice().Float64()
	rate, _ := ns.Scenario.DiscountRate().Float64()
	pathway := string(ns.Scenario.Pathway())
	if flags.Changed("price") {
		price = flagPrice
	}
	if flags.Changed("rate") {
		rate = flagRate
	}
	if flags.Changed("pathway") {
		pathway = flagPathway
	}

	scenario, err := domain.NewScenario(price, rate, pathway)
	if err != nil {
		return config.NamedScenario{}, err
	}
	return config.NamedScenario{Name: "Custom", Description: ns.Description, Scenario: scenario}, nil
}

// newEngine builds the engine for set, honouring --seed and the CLI logger.
func newEngine(cmd *cobra.Command, set *config.ScenarioSet) *calculation.CarbonEngine {
	engine := set.NewEngine()
	if cmd.Flags().Changed("seed") {
		engine.MonteCarlo.WithSeed(flagSeed)
	}
	engine.SetLogger(logger.Sugar())
	return engine
}

// setup loads the scenario set and resolves the scenario and engine every
// evaluating subcommand needs.
func setup(cmd *cobra.Command) (*config.ScenarioSet, config.NamedScenario, *calculation.CarbonEngine, error) {
	set, err := loadScenarioSet()
	if err != nil {
		return nil, config.NamedScenario{}, nil, err
	}
	ns, err := resolveScenario(cmd, set)
	if err != nil {
		return nil, config.NamedScenario{}, nil, err
	}
	return set, ns, newEngine(cmd, set), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
