package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_price", createSetCarbonPrice)
	registry.Register("scale_price", createScaleCarbonPrice)
	registry.Register("match_market", createMatchMarketPrice)
	registry.Register("set_rate", createSetDiscountRate)
	registry.Register("adjust_rate", createAdjustDiscountRate)
	registry.Register("set_pathway", createSetPathway)
	registry.Register("shift_pathway", createShiftPathway)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale_price:pct=25"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	// Parse parameters
	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformList parses several specs separated by semicolons, e.g.
// "scale_price:pct=50;set_pathway:pathway=BAU".
func (r *TransformRegistry) ParseTransformList(specs string) ([]ScenarioTransform, error) {
	var transforms []ScenarioTransform
	for _, spec := range strings.Split(specs, ";") {
		spec = strings.TrimSpace(spec)
		// Tolerate trailing and doubled separators
		if spec == "" {
			continue
		}
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createSetCarbonPrice(params map[string]string) (ScenarioTransform, error) {
	price, err := decimalParam("set_price", params, "price")
	if err != nil {
		return nil, err
	}
	return &SetCarbonPrice{Price: price}, nil
}

func createScaleCarbonPrice(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("scale_price", params, "pct")
	if err != nil {
		return nil, err
	}
	return &ScaleCarbonPrice{Percent: pct}, nil
}

func createMatchMarketPrice(params map[string]string) (ScenarioTransform, error) {
	market, ok := params["market"]
	if !ok {
		return nil, fmt.Errorf("match_market requires 'market' parameter")
	}
	return &MatchMarketPrice{Market: market}, nil
}

func createSetDiscountRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetDiscountRate{Rate: rate}, nil
}

func createAdjustDiscountRate(params map[string]string) (ScenarioTransform, error) {
	points, err := decimalParam("adjust_rate", params, "points")
	if err != nil {
		return nil, err
	}
	return &AdjustDiscountRate{Points: points}, nil
}

func createSetPathway(params map[string]string) (ScenarioTransform, error) {
	name, ok := params["pathway"]
	if !ok {
		return nil, fmt.Errorf("set_pathway requires 'pathway' parameter")
	}
	p, err := domain.ParsePathway(name)
	if err != nil {
		return nil, err
	}
	return &SetPathway{Pathway: p}, nil
}

func createShiftPathway(params map[string]string) (ScenarioTransform, error) {
	stepsStr, ok := params["steps"]
	if !ok {
		return nil, fmt.Errorf("shift_pathway requires 'steps' parameter")
	}
	steps, err := strconv.Atoi(stepsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid steps value: %w", err)
	}
	return &ShiftPathway{Steps: steps}, nil
}
