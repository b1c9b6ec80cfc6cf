package calculation

import (
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// WidowBenefitFactor is the share of the household benefit kept once the survivor files single.
var WidowBenefitFactor = decimal.NewFromFloat(0.85)

// SocialSecurityIncome resolves the benefit received in a projection year.
// From the widow trigger year onward the reduced survivor benefit is paid
// regardless of age; before it the full benefit starts at the effective claim age.
func SocialSecurityIncome(p domain.ClientProfile, year, age int) decimal.Decimal {
	if year >= p.WidowTriggerYear() {
		return p.SSBenefit.Mul(WidowBenefitFactor)
	}
	if age >= p.EffectiveClaimAge() {
		return p.SSBenefit
	}
	return decimal.Zero
}
