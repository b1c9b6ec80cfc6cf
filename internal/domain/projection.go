package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearlyRecord is the engine's snapshot of one projected year. Balances and
// estate value are end-of-year, after growth, RMD and conversion.
type YearlyRecord struct {
	Year               int             `json:"year"`
	Age                int             `json:"age"`
	FilingStatus       FilingStatus    `json:"filingStatus"`
	TraditionalBalance decimal.Decimal `json:"traditionalBalance"`
	RothBalance        decimal.Decimal `json:"rothBalance"`
	RMD                decimal.Decimal `json:"rmd"`
	Conversion         decimal.Decimal `json:"conversion"`
	SSIncome           decimal.Decimal `json:"ssIncome"`
	QCDOffset          decimal.Decimal `json:"qcdOffset"`
	GrossBaseIncome    decimal.Decimal `json:"grossBaseIncome"`
	StandardDeduction  decimal.Decimal `json:"standardDeduction"`
	TaxableIncome      decimal.Decimal `json:"taxableIncome"`
	Tax                decimal.Decimal `json:"tax"`
	IRMAASurcharge     decimal.Decimal `json:"irmaaSurcharge"`
	EstateValue        decimal.Decimal `json:"estateValue"`
}

// IsRMDYear reports whether a distribution was required this year.
func (r YearlyRecord) IsRMDYear() bool {
	return r.RMD.IsPositive()
}

// HasNegativeBalance reports whether conversions and RMDs overdrew the Traditional account.
func (r YearlyRecord) HasNegativeBalance() bool {
	return r.TraditionalBalance.IsNegative()
}

// ProjectionSummary provides lifetime totals for one projection run
type ProjectionSummary struct {
	Years                   int             `json:"years"`
	TotalTax                decimal.Decimal `json:"totalTax"`
	TotalRMD                decimal.Decimal `json:"totalRmd"`
	TotalIRMAA              decimal.Decimal `json:"totalIrmaa"`
	TotalConversions        decimal.Decimal `json:"totalConversions"`
	TotalQCD                decimal.Decimal `json:"totalQcd"`
	TotalSSIncome           decimal.Decimal `json:"totalSsIncome"`
	FinalTraditionalBalance decimal.Decimal `json:"finalTraditionalBalance"`
	FinalRothBalance        decimal.Decimal `json:"finalRothBalance"`
	FinalEstateValue        decimal.Decimal `json:"finalEstateValue"`
	PeakTaxableIncome       decimal.Decimal `json:"peakTaxableIncome"`
	NegativeBalanceYears    []int           `json:"negativeBalanceYears"`
	IRMAAYears              []int           `json:"irmaaYears"`
	FirstRMDYear            int             `json:"firstRmdYear"`
	FirstIRMAAYear          int             `json:"firstIrmaaYear"`
}

// Projection is one engine run with its summary
type Projection struct {
	StrategyName string            `json:"strategyName"`
	StrategyKey  string            `json:"strategyKey"`
	Strategy     StrategyChoice    `json:"-"`
	Records      []YearlyRecord    `json:"records"`
	Summary      ProjectionSummary `json:"summary"`
}

// ProjectionSet groups the runs produced for one scenario file so formatters
// can render them together.
type ProjectionSet struct {
	ReportID      string        `json:"reportId"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	ScenarioName  string        `json:"scenarioName"`
	Profile       ClientProfile `json:"profile"`
	TaxParameters TaxParameters `json:"taxParameters"`
	Projections   []Projection  `json:"projections"`
}

// Primary returns the first run in the set, which is the requested strategy.
func (ps *ProjectionSet) Primary() *Projection {
	if ps == nil || len(ps.Projections) == 0 {
		return nil
	}
	return &ps.Projections[0]
}

// IsBaseline reports whether the run never converts.
func (p Projection) IsBaseline() bool {
	if m, ok := p.Strategy.(Manual); ok {
		return m.Amount.IsZero()
	}
	return p.Strategy == nil && p.StrategyName == NoConversion().Name()
}

// Baseline returns the no-conversion run when the set carries one.
func (ps *ProjectionSet) Baseline() *Projection {
	if ps == nil {
		return nil
	}
	for i := range ps.Projections {
		if ps.Projections[i].IsBaseline() {
			return &ps.Projections[i]
		}
	}
	return nil
}
