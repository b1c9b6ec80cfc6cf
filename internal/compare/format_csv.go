package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Strategy",
		"Total Conversions",
		"Lifetime Tax",
		"Lifetime RMD",
		"Lifetime IRMAA",
		"Final Traditional IRA",
		"Final Roth IRA",
		"Net Estate to Heirs",
		"Overdrawn Years",
		"Tax Diff from Base",
		"IRMAA Diff from Base",
		"Estate Diff from Base",
		"Estate % Change",
		"Net Benefit",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.StrategyName,
		result.TotalConversions.StringFixed(2),
		result.LifetimeTax.StringFixed(2),
		result.LifetimeRMD.StringFixed(2),
		result.LifetimeIRMAA.StringFixed(2),
		result.FinalTraditional.StringFixed(2),
		result.FinalRoth.StringFixed(2),
		result.FinalEstate.StringFixed(2),
		formatInt(result.NegativeBalanceYears),
		result.TaxDiffFromBase.StringFixed(2),
		result.IRMAADiffFromBase.StringFixed(2),
		result.EstateDiffFromBase.StringFixed(2),
		result.EstatePctFromBase.StringFixed(2),
		result.NetBenefit.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
