package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrencyWhole,
	"rate":  FormatRate,
	"delta": FormatDelta,
	"neg":   func(d decimal.Decimal) bool { return d.IsNegative() },
}).Parse(htmlTemplateSource))

type comparisonRow struct {
	StrategyName string
	EstateChange decimal.Decimal
	TaxChange    decimal.Decimal
	IRMAAChange  decimal.Decimal
	NetBenefit   decimal.Decimal
}

func (h HTMLFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	if set == nil || len(set.Projections) == 0 {
		return nil, fmt.Errorf("no projections to format")
	}

	data := struct {
		*domain.ProjectionSet
		BaselineName string
		Comparisons  []comparisonRow
		IRMAA        *domain.IRMAAAnalysis
	}{ProjectionSet: set}

	if base := set.Baseline(); base != nil {
		data.BaselineName = base.StrategyName
		for _, p := range set.Projections {
			if p.IsBaseline() {
				continue
			}
			data.Comparisons = append(data.Comparisons, comparisonRow{
				StrategyName: p.StrategyName,
				EstateChange: p.Summary.FinalEstateValue.Sub(base.Summary.FinalEstateValue),
				TaxChange:    p.Summary.TotalTax.Sub(base.Summary.TotalTax),
				IRMAAChange:  p.Summary.TotalIRMAA.Sub(base.Summary.TotalIRMAA),
				NetBenefit:   calculation.NetBenefit(p.Summary, base.Summary),
			})
		}
	}
	data.IRMAA = calculation.AnalyzeIRMAARisk(set.Primary().Records, set.TaxParameters)

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
