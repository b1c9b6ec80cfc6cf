package calculation

import (
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// RMDStartAge is the first age a distribution is required.
	RMDStartAge = 73
	// RMDDivisor is the flat life-expectancy divisor applied to the start-of-year balance.
	RMDDivisor = 25
)

// QCDOffset returns the charitable distribution that counts toward the RMD
// at the given age, zero when QCDs are disabled or not yet started.
func QCDOffset(p domain.ClientProfile, age int) decimal.Decimal {
	if !p.QCDEnabled || age < p.QCDStartAge {
		return decimal.Zero
	}
	return p.QCDAnnualAmount
}

// CalculateRMD computes the taxable required distribution from the
// start-of-year Traditional balance. QCDs satisfy part of the requirement
// without being taxed; the result never goes below zero.
func CalculateRMD(traditionalBalance decimal.Decimal, age int, qcdOffset decimal.Decimal) decimal.Decimal {
	if age < RMDStartAge {
		return decimal.Zero
	}
	rmd := traditionalBalance.Div(decimal.NewFromInt(RMDDivisor)).Sub(qcdOffset)
	return decimal.Max(decimal.Zero, rmd)
}
