package transform

import (
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/domain"
)

// MaxSSClaimAge is the latest age a delayed claim can reach.
const MaxSSClaimAge = 70

// DelaySocialSecurity enables the claiming delay and sets its length in years.
type DelaySocialSecurity struct {
	Years int
}

func (d *DelaySocialSecurity) Name() string {
	return "delay_ss"
}

func (d *DelaySocialSecurity) Description() string {
	return fmt.Sprintf("Delay Social Security by %d year(s)", d.Years)
}

func (d *DelaySocialSecurity) Validate(base *domain.Scenario) error {
	if d.Years < 1 {
		return NewTransformError(d.Name(), "validate", fmt.Sprintf("delay must be at least 1 year, got %d", d.Years), nil)
	}
	if err := requireBase(d.Name(), base); err != nil {
		return err
	}
	if claim := base.Profile.SSClaimAge + d.Years; claim > MaxSSClaimAge {
		return NewTransformError(d.Name(), "validate",
			fmt.Sprintf("delayed claim age %d exceeds %d", claim, MaxSSClaimAge), nil)
	}
	return nil
}

func (d *DelaySocialSecurity) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Profile.SSDelayEnabled = true
	modified.Profile.SSDelayYears = d.Years
	return modified, nil
}
