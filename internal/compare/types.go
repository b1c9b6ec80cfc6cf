package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/rgehrsitz/rothgo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario run with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	StrategyName string             `json:"strategyName"`
	Projection   *domain.Projection `json:"-"`

	// Key Metrics
	LifetimeTax          decimal.Decimal `json:"lifetimeTax"`
	LifetimeRMD          decimal.Decimal `json:"lifetimeRmd"`
	LifetimeIRMAA        decimal.Decimal `json:"lifetimeIrmaa"`
	TotalConversions     decimal.Decimal `json:"totalConversions"`
	FinalTraditional     decimal.Decimal `json:"finalTraditional"`
	FinalRoth            decimal.Decimal `json:"finalRoth"`
	FinalEstate          decimal.Decimal `json:"finalEstate"`
	NegativeBalanceYears int             `json:"negativeBalanceYears"`
	IRMAAYears           int             `json:"irmaaYears"`

	// Comparison to Base
	TaxDiffFromBase    decimal.Decimal `json:"taxDiffFromBase"`
	RMDDiffFromBase    decimal.Decimal `json:"rmdDiffFromBase"`
	IRMAADiffFromBase  decimal.Decimal `json:"irmaaDiffFromBase"`
	EstateDiffFromBase decimal.Decimal `json:"estateDiffFromBase"`
	EstatePctFromBase  decimal.Decimal `json:"estatePctFromBase"`
	NetBenefit         decimal.Decimal `json:"netBenefit"`

	// Scenario Specifics (extracted from scenario for display)
	FilingStatus string `json:"filingStatus,omitempty"`
	SSClaimAge   int    `json:"ssClaimAge,omitempty"`
	QCDAnnual    string `json:"qcdAnnual,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	ReportID           string             `json:"reportId"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`

	Profile       domain.ClientProfile `json:"-"`
	TaxParameters domain.TaxParameters `json:"-"`
}

// ToProjectionSet converts a ComparisonSet into a projection set so the
// output formatters can render it. The base run comes last.
func (cs *ComparisonSet) ToProjectionSet() *domain.ProjectionSet {
	runs := make([]domain.Projection, 0, len(cs.AlternativeResults)+1)
	for _, result := range cs.AlternativeResults {
		if result.Projection != nil {
			p := *result.Projection
			p.StrategyName = result.ScenarioName
			runs = append(runs, p)
		}
	}
	if cs.BaseResult != nil && cs.BaseResult.Projection != nil {
		runs = append(runs, *cs.BaseResult.Projection)
	}

	return &domain.ProjectionSet{
		ReportID:      cs.ReportID,
		GeneratedAt:   cs.GeneratedAt,
		ScenarioName:  cs.BaseScenarioName,
		Profile:       cs.Profile,
		TaxParameters: cs.TaxParameters,
		Projections:   runs,
	}
}

// MetricsCalculator extracts key metrics from projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one scenario run
func (mc *MetricsCalculator) CalculateMetrics(scenario *domain.Scenario, projection *domain.Projection) ComparisonResult {
	s := projection.Summary
	result := ComparisonResult{
		ScenarioName:         scenario.Name,
		Description:          scenario.Description,
		StrategyName:         projection.StrategyName,
		Projection:           projection,
		LifetimeTax:          s.TotalTax,
		LifetimeRMD:          s.TotalRMD,
		LifetimeIRMAA:        s.TotalIRMAA,
		TotalConversions:     s.TotalConversions,
		FinalTraditional:     s.FinalTraditionalBalance,
		FinalRoth:            s.FinalRothBalance,
		FinalEstate:          s.FinalEstateValue,
		NegativeBalanceYears: len(s.NegativeBalanceYears),
		IRMAAYears:           len(s.IRMAAYears),
		FilingStatus:         scenario.Profile.FilingStatus.Label(),
		SSClaimAge:           scenario.Profile.EffectiveClaimAge(),
	}
	if scenario.Profile.QCDEnabled {
		result.QCDAnnual = output.FormatCurrencyWhole(scenario.Profile.QCDAnnualAmount)
	}
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.LifetimeTax.Sub(base.LifetimeTax)
	scenario.RMDDiffFromBase = scenario.LifetimeRMD.Sub(base.LifetimeRMD)
	scenario.IRMAADiffFromBase = scenario.LifetimeIRMAA.Sub(base.LifetimeIRMAA)
	scenario.EstateDiffFromBase = scenario.FinalEstate.Sub(base.FinalEstate)

	if !base.FinalEstate.IsZero() {
		scenario.EstatePctFromBase = scenario.EstateDiffFromBase.
			Div(base.FinalEstate.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	if scenario.Projection != nil && base.Projection != nil {
		scenario.NetBenefit = calculation.NetBenefit(scenario.Projection.Summary, base.Projection.Summary)
	} else {
		scenario.NetBenefit = scenario.EstateDiffFromBase.Sub(scenario.TaxDiffFromBase)
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find best net benefit
	best := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.NetBenefit.IsPositive() && (best < 0 || alt.NetBenefit.GreaterThan(compSet.AlternativeResults[best].NetBenefit)) {
			best = i
		}
	}
	if best >= 0 {
		alt := compSet.AlternativeResults[best]
		recommendations = append(recommendations,
			"Best Net Benefit: "+alt.ScenarioName+" is worth "+output.FormatCurrencyWhole(alt.NetBenefit)+
				" more to heirs after tax than "+compSet.BaseScenarioName)
	} else {
		recommendations = append(recommendations,
			"No alternative beats "+compSet.BaseScenarioName+" on net benefit")
	}

	// Find best estate
	bestEstate := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.FinalEstate.GreaterThan(compSet.BaseResult.FinalEstate) &&
			(bestEstate < 0 || alt.FinalEstate.GreaterThan(compSet.AlternativeResults[bestEstate].FinalEstate)) {
			bestEstate = i
		}
	}
	if bestEstate >= 0 {
		alt := compSet.AlternativeResults[bestEstate]
		recommendations = append(recommendations,
			"Largest Estate: "+alt.ScenarioName+" leaves "+output.FormatCurrencyWhole(alt.EstateDiffFromBase)+
				" more to heirs")
	}

	// Find lowest tax burden
	lowestTax := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.LifetimeTax.LessThan(compSet.BaseResult.LifetimeTax) &&
			(lowestTax < 0 || alt.LifetimeTax.LessThan(compSet.AlternativeResults[lowestTax].LifetimeTax)) {
			lowestTax = i
		}
	}
	if lowestTax >= 0 {
		alt := compSet.AlternativeResults[lowestTax]
		recommendations = append(recommendations,
			"Lowest Taxes: "+alt.ScenarioName+" saves "+output.FormatCurrencyWhole(alt.TaxDiffFromBase.Neg())+
				" in lifetime taxes")
	}

	// Find lowest IRMAA exposure
	lowestIRMAA := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.LifetimeIRMAA.LessThan(compSet.BaseResult.LifetimeIRMAA) &&
			(lowestIRMAA < 0 || alt.LifetimeIRMAA.LessThan(compSet.AlternativeResults[lowestIRMAA].LifetimeIRMAA)) {
			lowestIRMAA = i
		}
	}
	if lowestIRMAA >= 0 {
		alt := compSet.AlternativeResults[lowestIRMAA]
		recommendations = append(recommendations,
			"Lowest IRMAA: "+alt.ScenarioName+" avoids "+output.FormatCurrencyWhole(alt.IRMAADiffFromBase.Neg())+
				" in Medicare surcharges")
	}

	// Overdrawn accounts
	for _, alt := range compSet.AlternativeResults {
		if alt.NegativeBalanceYears > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s overdraws the Traditional IRA in %d year(s); reduce the conversion amount",
					alt.ScenarioName, alt.NegativeBalanceYears))
		}
	}

	return recommendations
}
