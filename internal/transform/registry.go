package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/rothgo/internal/domain"
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

	registry.Register("set_strategy", createSetStrategy)
	registry.Register("delay_ss", createDelaySocialSecurity)
	registry.Register("enable_qcd", createEnableQCD)
	registry.Register("survivor_after", createSurvivorAfter)
	registry.Register("adjust_growth", createAdjustGrowthRate)

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

// List returns the sorted names of all registered transforms.
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
// Example: "set_strategy:type=bracket_fill,bracket=22%"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

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

// Factory functions for each transform

func createSetStrategy(params map[string]string) (ScenarioTransform, error) {
	kind, ok := params["type"]
	if !ok {
		return nil, fmt.Errorf("set_strategy requires 'type' parameter")
	}

	amount := decimal.Zero
	if amountStr, ok := params["amount"]; ok {
		var err error
		amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
	}

	strategy, err := domain.ParseStrategy(kind, amount, params["bracket"])
	if err != nil {
		return nil, err
	}
	return &SetStrategy{Strategy: strategy}, nil
}

func createDelaySocialSecurity(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("delay_ss requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &DelaySocialSecurity{Years: years}, nil
}

func createEnableQCD(params map[string]string) (ScenarioTransform, error) {
	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("enable_qcd requires 'amount' parameter")
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}

	startAge := 0
	if ageStr, ok := params["start_age"]; ok {
		startAge, err = strconv.Atoi(ageStr)
		if err != nil {
			return nil, fmt.Errorf("invalid start_age value: %w", err)
		}
	}

	return &EnableQCD{Amount: amount, StartAge: startAge}, nil
}

func createSurvivorAfter(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("survivor_after requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &SurvivorAfter{Years: years}, nil
}

func createAdjustGrowthRate(params map[string]string) (ScenarioTransform, error) {
	rateStr, ok := params["rate"]
	if !ok {
		return nil, fmt.Errorf("adjust_growth requires 'rate' parameter")
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}

	return &AdjustGrowthRate{Rate: rate}, nil
}
