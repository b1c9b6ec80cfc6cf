package domain

import "fmt"

// Scenario is a named household profile plus the strategy to project for it.
type Scenario struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Profile     ClientProfile  `yaml:"profile" json:"profile"`
	Strategy    StrategyConfig `yaml:"strategy" json:"strategy"`
}

// ResolveStrategy returns the scenario's validated strategy.
func (s *Scenario) ResolveStrategy() (StrategyChoice, error) {
	choice, err := s.Strategy.Resolve()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return choice, nil
}

// Validate checks the profile and strategy.
func (s *Scenario) Validate() error {
	if err := s.Profile.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if _, err := s.ResolveStrategy(); err != nil {
		return err
	}
	return nil
}

// Clone returns an independent copy. Decimal values are immutable so a
// shallow struct copy is sufficient.
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
