package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// ConsoleFormatter renders the year-by-year table, lifetime summary and IRMAA
// analysis for every run in the set.
type ConsoleFormatter struct {
	// SummaryOnly suppresses the year table.
	SummaryOnly bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	if set == nil || len(set.Projections) == 0 {
		return nil, fmt.Errorf("no projections to format")
	}

	var buf bytes.Buffer
	writeHeader(&buf, set)

	for _, p := range set.Projections {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "STRATEGY: %s\n", p.StrategyName)
		fmt.Fprintln(&buf, strings.Repeat("-", 65))
		if !c.SummaryOnly {
			writeYearTable(&buf, p.Records, set.TaxParameters)
			fmt.Fprintln(&buf)
		}
		writeSummary(&buf, p.Summary)
	}

	if base := set.Baseline(); base != nil {
		for _, p := range set.Projections {
			if p.IsBaseline() {
				continue
			}
			fmt.Fprintln(&buf)
			writeNetBenefit(&buf, p, *base)
		}
	}

	if primary := set.Primary(); primary != nil {
		fmt.Fprintln(&buf)
		writeIRMAAAnalysis(&buf, calculation.AnalyzeIRMAARisk(primary.Records, set.TaxParameters))
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, set *domain.ProjectionSet) {
	p := set.Profile
	fmt.Fprintln(w, "ROTH CONVERSION PROJECTION")
	fmt.Fprintln(w, strings.Repeat("=", 65))
	if set.ScenarioName != "" {
		fmt.Fprintf(w, "Scenario: %s\n", set.ScenarioName)
	}
	if set.ReportID != "" {
		fmt.Fprintf(w, "Report ID: %s (%s)\n", set.ReportID, set.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Filing Status: %s   Ages %d-%d (%d-%d)   Growth: %s\n",
		p.FilingStatus.Label(), p.CurrentAge, p.LifeExpectancy-1,
		p.FirstYear(), p.FirstYear()+p.Horizon()-1, FormatRate(p.GrowthRate))
	fmt.Fprintf(w, "Starting Balances: Traditional %s   Roth %s\n",
		FormatCurrencyWhole(p.TraditionalBalance), FormatCurrencyWhole(p.RothBalance))
	fmt.Fprintf(w, "Social Security: %s/yr from age %d", FormatCurrencyWhole(p.SSBenefit), p.EffectiveClaimAge())
	if p.FilingStatus == domain.FilingJoint {
		fmt.Fprintf(w, "   Survivor files single from %d", p.WidowTriggerYear())
	}
	fmt.Fprintln(w)
	if p.QCDEnabled {
		fmt.Fprintf(w, "QCD: %s/yr from age %d\n", FormatCurrencyWhole(p.QCDAnnualAmount), p.QCDStartAge)
	}
	fmt.Fprintf(w, "Heir Tax Rate: %s\n", FormatRate(set.TaxParameters.HeirTaxRate))
}

func writeYearTable(w io.Writer, records []domain.YearlyRecord, params domain.TaxParameters) {
	fmt.Fprintf(w, "%-5s %-4s %-7s %12s %12s %11s %10s %9s %10s %11s %10s %8s %8s %7s %12s\n",
		"Year", "Age", "Status", "Traditional", "Roth", "Conversion", "RMD", "QCD", "SS", "Taxable", "Tax", "Marginal", "Eff Rate", "IRMAA", "Estate")
	for _, r := range records {
		brackets := params.BracketsFor(r.FilingStatus)
		marker := " "
		if r.HasNegativeBalance() {
			marker = "!"
		}
		fmt.Fprintf(w, "%-5d %-4d %-7s %12s %12s %11s %10s %9s %10s %11s %10s %8s %8s %7s %12s%s\n",
			r.Year, r.Age, r.FilingStatus.Label(),
			FormatCurrencyWhole(r.TraditionalBalance),
			FormatCurrencyWhole(r.RothBalance),
			FormatCurrencyWhole(r.Conversion),
			FormatCurrencyWhole(r.RMD),
			FormatCurrencyWhole(r.QCDOffset),
			FormatCurrencyWhole(r.SSIncome),
			FormatCurrencyWhole(r.TaxableIncome),
			FormatCurrencyWhole(r.Tax),
			FormatRate(calculation.MarginalRate(r.TaxableIncome, brackets)),
			FormatRate(calculation.EffectiveRate(r.TaxableIncome, brackets)),
			FormatCurrencyWhole(r.IRMAASurcharge),
			FormatCurrencyWhole(r.EstateValue),
			marker,
		)
	}
}

func writeSummary(w io.Writer, s domain.ProjectionSummary) {
	line := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", padRight(label+":", 26), value)
	}
	line("Total Conversions", FormatCurrencyWhole(s.TotalConversions))
	line("Total Tax", FormatCurrencyWhole(s.TotalTax))
	line("Total RMDs", FormatCurrencyWhole(s.TotalRMD))
	line("Total IRMAA", FormatCurrencyWhole(s.TotalIRMAA))
	if s.TotalQCD.IsPositive() {
		line("Total QCD", FormatCurrencyWhole(s.TotalQCD))
	}
	line("Final Traditional IRA", FormatCurrencyWhole(s.FinalTraditionalBalance))
	line("Final Roth IRA", FormatCurrencyWhole(s.FinalRothBalance))
	line("Net Estate to Heirs", FormatCurrencyWhole(s.FinalEstateValue))
	if len(s.NegativeBalanceYears) > 0 {
		fmt.Fprintf(w, "  WARNING: Traditional IRA is overdrawn in %d year(s), first in %d\n",
			len(s.NegativeBalanceYears), s.NegativeBalanceYears[0])
	}
}

func writeNetBenefit(w io.Writer, p, base domain.Projection) {
	fmt.Fprintf(w, "%s vs %s\n", p.StrategyName, base.StrategyName)
	fmt.Fprintf(w, "  Estate Change:   %s\n", FormatDelta(p.Summary.FinalEstateValue.Sub(base.Summary.FinalEstateValue)))
	fmt.Fprintf(w, "  Tax Change:      %s\n", FormatDelta(p.Summary.TotalTax.Sub(base.Summary.TotalTax)))
	fmt.Fprintf(w, "  IRMAA Change:    %s\n", FormatDelta(p.Summary.TotalIRMAA.Sub(base.Summary.TotalIRMAA)))
	fmt.Fprintf(w, "  Net Benefit:     %s\n", FormatDelta(calculation.NetBenefit(p.Summary, base.Summary)))
}

func writeIRMAAAnalysis(w io.Writer, a *domain.IRMAAAnalysis) {
	fmt.Fprintln(w, "IRMAA ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("-", 65))
	fmt.Fprintf(w, "  Years over threshold: %d   Years within warning range: %d\n",
		len(a.YearsWithBreaches), len(a.YearsWithWarnings))
	if a.FirstBreachYear != 0 {
		fmt.Fprintf(w, "  First breach: %d   Total surcharges: %s\n", a.FirstBreachYear, FormatCurrencyWhole(a.TotalIRMAACost))
	}
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "  • %s\n", r)
	}
}
