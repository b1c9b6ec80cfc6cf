package domain

import "github.com/shopspring/decimal"

// IRMAARisk classifies how close a year's taxable income sits to the IRMAA threshold.
type IRMAARisk string

const (
	IRMAARiskSafe    IRMAARisk = "safe"
	IRMAARiskWarning IRMAARisk = "warning"
	IRMAARiskBreach  IRMAARisk = "breach"
)

// IRMAAYearRisk details a single year that is in or near surcharge territory
type IRMAAYearRisk struct {
	Year                int             `json:"year"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	Threshold           decimal.Decimal `json:"threshold"`
	DistanceToThreshold decimal.Decimal `json:"distanceToThreshold"` // negative when over
	RiskStatus          IRMAARisk       `json:"riskStatus"`
	TierLevel           string          `json:"tierLevel"`
	Surcharge           decimal.Decimal `json:"surcharge"`
}

// IRMAAAnalysis summarizes IRMAA exposure across a projection
type IRMAAAnalysis struct {
	YearsWithBreaches []int           `json:"yearsWithBreaches"`
	YearsWithWarnings []int           `json:"yearsWithWarnings"`
	TotalIRMAACost    decimal.Decimal `json:"totalIrmaaCost"`
	FirstBreachYear   int             `json:"firstBreachYear"`
	HighRiskYears     []IRMAAYearRisk `json:"highRiskYears"`
	Recommendations   []string        `json:"recommendations"`
}
