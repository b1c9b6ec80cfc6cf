package transform

import (
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetStrategy replaces the scenario's conversion strategy.
type SetStrategy struct {
	Strategy domain.StrategyChoice
}

func (s *SetStrategy) Name() string {
	return "set_strategy"
}

func (s *SetStrategy) Description() string {
	if s.Strategy == nil {
		return "Set conversion strategy"
	}
	return fmt.Sprintf("Use the %s conversion strategy", s.Strategy.Name())
}

func (s *SetStrategy) Validate(base *domain.Scenario) error {
	if s.Strategy == nil {
		return NewTransformError(s.Name(), "validate", "strategy cannot be nil", domain.ErrInvalidStrategy)
	}
	if err := s.Strategy.Validate(); err != nil {
		return NewTransformError(s.Name(), "validate", "invalid strategy", err)
	}
	return requireBase(s.Name(), base)
}

func (s *SetStrategy) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Strategy = domain.StrategyConfigFor(s.Strategy)
	return modified, nil
}

// AdjustGrowthRate replaces the flat annual growth rate.
type AdjustGrowthRate struct {
	Rate decimal.Decimal
}

func (a *AdjustGrowthRate) Name() string {
	return "adjust_growth"
}

func (a *AdjustGrowthRate) Description() string {
	return fmt.Sprintf("Set annual growth to %s%%", a.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (a *AdjustGrowthRate) Validate(base *domain.Scenario) error {
	if a.Rate.IsNegative() || a.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return NewTransformError(a.Name(), "validate", fmt.Sprintf("growth rate must be in [0, 1), got %s", a.Rate), nil)
	}
	return requireBase(a.Name(), base)
}

func (a *AdjustGrowthRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Profile.GrowthRate = a.Rate
	return modified, nil
}
