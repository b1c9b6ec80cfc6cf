package transform

import (
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// EnableQCD turns on qualified charitable distributions.
type EnableQCD struct {
	Amount   decimal.Decimal
	StartAge int // zero keeps the scenario's start age
}

func (e *EnableQCD) Name() string {
	return "enable_qcd"
}

func (e *EnableQCD) Description() string {
	if e.StartAge > 0 {
		return fmt.Sprintf("Give $%s per year as QCDs from age %d", e.Amount.StringFixed(0), e.StartAge)
	}
	return fmt.Sprintf("Give $%s per year as QCDs", e.Amount.StringFixed(0))
}

func (e *EnableQCD) Validate(base *domain.Scenario) error {
	if !e.Amount.IsPositive() {
		return NewTransformError(e.Name(), "validate", "QCD amount must be positive", nil)
	}
	if e.StartAge < 0 {
		return NewTransformError(e.Name(), "validate", "QCD start age cannot be negative", nil)
	}
	return requireBase(e.Name(), base)
}

func (e *EnableQCD) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Profile.QCDEnabled = true
	modified.Profile.QCDAnnualAmount = e.Amount
	if e.StartAge > 0 {
		modified.Profile.QCDStartAge = e.StartAge
	}
	return modified, nil
}

// SurvivorAfter sets how many years pass before the survivor files single.
type SurvivorAfter struct {
	Years int
}

func (s *SurvivorAfter) Name() string {
	return "survivor_after"
}

func (s *SurvivorAfter) Description() string {
	return fmt.Sprintf("Survivor files single after %d year(s)", s.Years)
}

func (s *SurvivorAfter) Validate(base *domain.Scenario) error {
	if s.Years < 0 {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("years cannot be negative, got %d", s.Years), nil)
	}
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if base.Profile.FilingStatus != domain.FilingJoint {
		return NewTransformError(s.Name(), "validate", "survivor timing only applies to joint filers", nil)
	}
	return nil
}

func (s *SurvivorAfter) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Profile.YearsUntilSurvivorSingle = s.Years
	return modified, nil
}
