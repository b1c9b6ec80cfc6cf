package calculation

import (
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// IRMAAWarningDistance is the threshold for warning status (within $10K of threshold)
	IRMAAWarningDistance = 10000
)

// IRMAATier returns 0 when taxable income is at or below the threshold, 1 for
// the first tier and 2 once income reaches threshold × multiplier.
func IRMAATier(taxableIncome decimal.Decimal, status domain.FilingStatus, params domain.TaxParameters) int {
	threshold := params.IRMAAThresholdFor(status)
	if taxableIncome.LessThanOrEqual(threshold) {
		return 0
	}
	if taxableIncome.LessThan(threshold.Mul(params.IRMAA.Tier2Multiplier)) {
		return 1
	}
	return 2
}

// IRMAASurcharge is the flat annual surcharge for the tier taxable income falls in.
func IRMAASurcharge(taxableIncome decimal.Decimal, status domain.FilingStatus, params domain.TaxParameters) decimal.Decimal {
	switch IRMAATier(taxableIncome, status, params) {
	case 1:
		return params.IRMAA.Tier1Surcharge
	case 2:
		return params.IRMAA.Tier2Surcharge
	default:
		return decimal.Zero
	}
}

// CalculateIRMAARiskStatus classifies a single year and returns the distance
// to the threshold (negative when over).
func CalculateIRMAARiskStatus(
	taxableIncome decimal.Decimal,
	status domain.FilingStatus,
	params domain.TaxParameters,
) (domain.IRMAARisk, string, decimal.Decimal) {
	threshold := params.IRMAAThresholdFor(status)
	distance := threshold.Sub(taxableIncome)

	switch tier := IRMAATier(taxableIncome, status, params); tier {
	case 0:
		if distance.LessThanOrEqual(decimal.NewFromInt(IRMAAWarningDistance)) {
			return domain.IRMAARiskWarning, "None", distance
		}
		return domain.IRMAARiskSafe, "None", distance
	default:
		return domain.IRMAARiskBreach, getTierName(tier), distance
	}
}

// getTierName returns a human-readable tier name
func getTierName(tier int) string {
	switch tier {
	case 1:
		return "Tier1"
	case 2:
		return "Tier2"
	default:
		return "Unknown"
	}
}

// AnalyzeIRMAARisk performs an IRMAA risk analysis across all projection years
func AnalyzeIRMAARisk(records []domain.YearlyRecord, params domain.TaxParameters) *domain.IRMAAAnalysis {
	analysis := &domain.IRMAAAnalysis{
		YearsWithBreaches: []int{},
		YearsWithWarnings: []int{},
		TotalIRMAACost:    decimal.Zero,
		HighRiskYears:     []domain.IRMAAYearRisk{},
	}

	for _, r := range records {
		riskStatus, tierLevel, distance := CalculateIRMAARiskStatus(r.TaxableIncome, r.FilingStatus, params)

		switch riskStatus {
		case domain.IRMAARiskBreach:
			analysis.YearsWithBreaches = append(analysis.YearsWithBreaches, r.Year)
			if analysis.FirstBreachYear == 0 {
				analysis.FirstBreachYear = r.Year
			}
			analysis.TotalIRMAACost = analysis.TotalIRMAACost.Add(r.IRMAASurcharge)
		case domain.IRMAARiskWarning:
			analysis.YearsWithWarnings = append(analysis.YearsWithWarnings, r.Year)
		default:
			continue
		}

		analysis.HighRiskYears = append(analysis.HighRiskYears, domain.IRMAAYearRisk{
			Year:                r.Year,
			TaxableIncome:       r.TaxableIncome,
			Threshold:           params.IRMAAThresholdFor(r.FilingStatus),
			DistanceToThreshold: distance,
			RiskStatus:          riskStatus,
			TierLevel:           tierLevel,
			Surcharge:           r.IRMAASurcharge,
		})
	}

	analysis.Recommendations = generateIRMAARecommendations(analysis)
	return analysis
}

// generateIRMAARecommendations generates actionable recommendations based on IRMAA analysis
func generateIRMAARecommendations(analysis *domain.IRMAAAnalysis) []string {
	var recommendations []string

	if len(analysis.YearsWithBreaches) > 0 {
		recommendations = append(recommendations,
			"IRMAA surcharges apply in some years - consider capping conversions at the IRMAA threshold",
			"Convert more in the years before Social Security and RMDs begin",
			"Qualified charitable distributions reduce RMD income once eligible",
		)
	} else if len(analysis.YearsWithWarnings) > 0 {
		recommendations = append(recommendations,
			"Income is within $10K of the IRMAA threshold in some years - monitor conversion amounts",
		)
	} else {
		recommendations = append(recommendations,
			"No IRMAA concerns - taxable income remains comfortably below the threshold",
		)
	}
	return recommendations
}
