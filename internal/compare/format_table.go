package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("ROTH CONVERSION STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	if compSet.ReportID != "" {
		sb.WriteString(fmt.Sprintf("Report ID: %s\n", compSet.ReportID))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 30
	numWidth := 11

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Converted",
		numWidth, "Total Tax",
		numWidth, "Total RMD",
		numWidth, "IRMAA",
		numWidth, "Estate"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	// Base scenario row
	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Net Estate:       %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.EstateDiffFromBase),
				tf.formatDecimal(alt.EstateDiffFromBase),
				alt.EstatePctFromBase.StringFixed(1)))

			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Tax Impact:       %s$%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					tf.formatDecimal(alt.TaxDiffFromBase)))
			}

			if !alt.IRMAADiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  IRMAA Impact:     %s$%s\n",
					tf.deltaSymbol(alt.IRMAADiffFromBase),
					tf.formatDecimal(alt.IRMAADiffFromBase)))
			}

			sb.WriteString(fmt.Sprintf("  Net Benefit:      %s$%s\n",
				tf.deltaSymbol(alt.NetBenefit),
				tf.formatDecimal(alt.NetBenefit)))

			if alt.NegativeBalanceYears > 0 {
				sb.WriteString(fmt.Sprintf("  Overdrawn Years:  %d\n", alt.NegativeBalanceYears))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TotalConversions),
		numWidth, "$"+tf.formatDecimal(result.LifetimeTax),
		numWidth, "$"+tf.formatDecimal(result.LifetimeRMD),
		numWidth, "$"+tf.formatDecimal(result.LifetimeIRMAA),
		numWidth, "$"+tf.formatDecimal(result.FinalEstate))
}

// formatDecimal formats a magnitude for display (in thousands or millions);
// callers carry the sign separately.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	d = d.Abs()
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign of a delta, or a space when unchanged
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of each scenario's net benefit
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetBenefit.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.NetBenefit))
		} else if alt.NetBenefit.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.NetBenefit))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
