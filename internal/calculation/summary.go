package calculation

import (
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize folds a projection into lifetime totals and final balances.
func Summarize(records []domain.YearlyRecord) domain.ProjectionSummary {
	s := domain.ProjectionSummary{
		Years:                len(records),
		TotalTax:             decimal.Zero,
		TotalRMD:             decimal.Zero,
		TotalIRMAA:           decimal.Zero,
		TotalConversions:     decimal.Zero,
		TotalQCD:             decimal.Zero,
		TotalSSIncome:        decimal.Zero,
		PeakTaxableIncome:    decimal.Zero,
		NegativeBalanceYears: []int{},
		IRMAAYears:           []int{},
	}

	for i, r := range records {
		s.TotalTax = s.TotalTax.Add(r.Tax)
		s.TotalRMD = s.TotalRMD.Add(r.RMD)
		s.TotalIRMAA = s.TotalIRMAA.Add(r.IRMAASurcharge)
		s.TotalConversions = s.TotalConversions.Add(r.Conversion)
		s.TotalQCD = s.TotalQCD.Add(r.QCDOffset)
		s.TotalSSIncome = s.TotalSSIncome.Add(r.SSIncome)

		if i == 0 || r.TaxableIncome.GreaterThan(s.PeakTaxableIncome) {
			s.PeakTaxableIncome = r.TaxableIncome
		}
		if r.HasNegativeBalance() {
			s.NegativeBalanceYears = append(s.NegativeBalanceYears, r.Year)
		}
		if r.IRMAASurcharge.IsPositive() {
			s.IRMAAYears = append(s.IRMAAYears, r.Year)
			if s.FirstIRMAAYear == 0 {
				s.FirstIRMAAYear = r.Year
			}
		}
		if s.FirstRMDYear == 0 && r.IsRMDYear() {
			s.FirstRMDYear = r.Year
		}
	}

	if n := len(records); n > 0 {
		last := records[n-1]
		s.FinalTraditionalBalance = last.TraditionalBalance
		s.FinalRothBalance = last.RothBalance
		s.FinalEstateValue = last.EstateValue
	}
	return s
}

// NetBenefit is the strategy's estate gain over the baseline less the extra
// lifetime tax it paid.
func NetBenefit(strategy, baseline domain.ProjectionSummary) decimal.Decimal {
	estateGain := strategy.FinalEstateValue.Sub(baseline.FinalEstateValue)
	extraTax := strategy.TotalTax.Sub(baseline.TotalTax)
	return estateGain.Sub(extraTax)
}
