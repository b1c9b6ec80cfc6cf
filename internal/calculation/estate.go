package calculation

import "github.com/shopspring/decimal"

// EstateValue is the after-tax value to heirs: Traditional money is reduced
// by the heir tax rate, Roth passes through untaxed.
func EstateValue(traditional, roth, heirTaxRate decimal.Decimal) decimal.Decimal {
	return traditional.Mul(decimal.NewFromInt(1).Sub(heirTaxRate)).Add(roth)
}
