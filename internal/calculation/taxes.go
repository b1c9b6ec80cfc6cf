package calculation

import (
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets only, from TaxParameters. The same table is used for
//    every projected year (no inflation indexing).
// 2. Single and joint filers each have their own table. Single brackets are
//    never derived by halving the joint table.
// 3. Social Security income is fully included in gross income. No
//    provisional-income test or inclusion factor is applied.

// ProgressiveTax applies a bracket schedule to taxable income. Each bracket
// taxes the slice of income between its floor and the next bracket's floor;
// the last bracket is open-ended. Income at or below zero owes nothing.
func ProgressiveTax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	for i, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Floor) {
			break
		}
		top := taxableIncome
		if i+1 < len(brackets) && brackets[i+1].Floor.LessThan(top) {
			top = brackets[i+1].Floor
		}
		tax = tax.Add(top.Sub(b.Floor).Mul(b.Rate))
	}
	return tax
}

// MarginalRate returns the rate of the bracket containing taxableIncome.
func MarginalRate(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	rate := decimal.Zero
	if !taxableIncome.IsPositive() {
		if len(brackets) > 0 {
			return brackets[0].Rate
		}
		return rate
	}
	for _, b := range brackets {
		if taxableIncome.GreaterThan(b.Floor) {
			rate = b.Rate
		}
	}
	return rate
}

// EffectiveRate is tax divided by taxable income, zero when income is not positive.
func EffectiveRate(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	return ProgressiveTax(taxableIncome, brackets).Div(taxableIncome)
}
