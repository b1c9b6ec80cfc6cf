package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveConversion returns the amount converted this year under the strategy.
// Limit-based strategies fill the room between income after the deduction and
// the limit for the effective filing status; there is no balance check, so a
// conversion may exceed the Traditional balance.
func ResolveConversion(
	strategy domain.StrategyChoice,
	status domain.FilingStatus,
	grossBase, deduction decimal.Decimal,
	params domain.TaxParameters,
) decimal.Decimal {
	switch s := strategy.(type) {
	case domain.Manual:
		return decimal.Max(decimal.Zero, s.Amount)
	case domain.BracketFill:
		ceiling, ok := params.BracketCeiling(status, s.Target.Rate())
		if !ok {
			return decimal.Zero
		}
		return fillTo(ceiling, grossBase, deduction)
	case domain.MaxToIRMAAThreshold:
		return fillTo(params.IRMAAThresholdFor(status), grossBase, deduction)
	default:
		panic(fmt.Sprintf("calculation: unhandled strategy %T", strategy))
	}
}

func fillTo(limit, grossBase, deduction decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, limit.Sub(grossBase).Sub(deduction))
}

// validateStrategy checks that a strategy can be resolved for every filing
// status the projection may use, so the yearly loop cannot fail.
func validateStrategy(strategy domain.StrategyChoice, params domain.TaxParameters) error {
	if strategy == nil {
		return fmt.Errorf("%w: no strategy selected", domain.ErrInvalidStrategy)
	}
	if err := strategy.Validate(); err != nil {
		return err
	}
	if bf, ok := strategy.(domain.BracketFill); ok {
		for _, fs := range []domain.FilingStatus{domain.FilingJoint, domain.FilingSingle} {
			if _, ok := params.BracketCeiling(fs, bf.Target.Rate()); !ok {
				return fmt.Errorf("%w: %s bracket has no ceiling in the %s table", domain.ErrInvalidStrategy, bf.Target, fs)
			}
		}
	}
	return nil
}
