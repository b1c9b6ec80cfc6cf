package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario and tax parameter files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file. Fields the file
// omits keep the form defaults of domain.DefaultClientProfile.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	scenario, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if scenario.Name == "" {
		scenario.Name = filename
	}

	if err := ip.ValidateScenario(scenario); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return scenario, nil
}

// Parse decodes scenario YAML without validating it.
func (ip *InputParser) Parse(data []byte) (*domain.Scenario, error) {
	scenario := domain.Scenario{
		Profile:  domain.DefaultClientProfile(),
		Strategy: domain.StrategyConfig{Type: "manual"},
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// ValidateScenario validates the loaded scenario
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario is required")
	}
	return scenario.Validate()
}

// LoadTaxParameters loads tax tables from a YAML file layered over the
// built-in 2025 defaults. An empty filename returns the defaults.
func (ip *InputParser) LoadTaxParameters(filename string) (domain.TaxParameters, error) {
	params := domain.DefaultTaxParameters()
	if filename == "" {
		return params, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxParameters{}, fmt.Errorf("failed to read tax parameters %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return domain.TaxParameters{}, fmt.Errorf("failed to parse tax parameters YAML: %w", err)
	}
	if err := params.Validate(); err != nil {
		return domain.TaxParameters{}, fmt.Errorf("tax parameters %s: %w", filename, err)
	}
	return params, nil
}

// LoadFromFileWithTaxParameters loads a scenario and the tax tables it runs against.
func (ip *InputParser) LoadFromFileWithTaxParameters(scenarioFile, taxFile string) (*domain.Scenario, domain.TaxParameters, error) {
	scenario, err := ip.LoadFromFile(scenarioFile)
	if err != nil {
		return nil, domain.TaxParameters{}, err
	}
	params, err := ip.LoadTaxParameters(taxFile)
	if err != nil {
		return nil, domain.TaxParameters{}, err
	}
	return scenario, params, nil
}
