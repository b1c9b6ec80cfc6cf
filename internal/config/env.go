package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// Settings are process-wide overrides read from the environment. Command
// line flags take precedence over them.
type Settings struct {
	TaxParametersFile string `env:"ROTHGO_TAX_PARAMETERS"`
	Format            string `env:"ROTHGO_FORMAT" envDefault:"console"`
	Debug             bool   `env:"ROTHGO_DEBUG"`
	StartYear         int    `env:"ROTHGO_START_YEAR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if s.StartYear < 0 {
		return Settings{}, fmt.Errorf("ROTHGO_START_YEAR must not be negative, got %d", s.StartYear)
	}
	return s, nil
}

// ApplyToScenario overrides scenario fields the environment sets.
func (s Settings) ApplyToScenario(scenario *domain.Scenario) {
	if scenario == nil {
		return
	}
	if s.StartYear > 0 {
		scenario.Profile.StartYear = s.StartYear
	}
}
