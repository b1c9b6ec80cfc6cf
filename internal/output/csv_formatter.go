package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// CSVHeader lists the columns of the year-by-year export.
var CSVHeader = []string{
	"Strategy", "Year", "Age", "Filing Status",
	"Traditional IRA", "Roth IRA", "Roth Conversion", "RMD", "QCD Offset",
	"SS Income", "Taxable Income", "Estimated Tax", "IRMAA Surcharge", "Net Estate to Heirs",
	"Marginal Rate", "Effective Rate",
}

// CSVFormatter writes one row per projected year per run.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("no projections to format")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, p := range set.Projections {
		for _, r := range p.Records {
			brackets := set.TaxParameters.BracketsFor(r.FilingStatus)
			row := []string{
				p.StrategyName,
				strconv.Itoa(r.Year),
				strconv.Itoa(r.Age),
				r.FilingStatus.Label(),
				r.TraditionalBalance.StringFixed(2),
				r.RothBalance.StringFixed(2),
				r.Conversion.StringFixed(2),
				r.RMD.StringFixed(2),
				r.QCDOffset.StringFixed(2),
				r.SSIncome.StringFixed(2),
				r.TaxableIncome.StringFixed(2),
				r.Tax.StringFixed(2),
				r.IRMAASurcharge.StringFixed(2),
				r.EstateValue.StringFixed(2),
				calculation.MarginalRate(r.TaxableIncome, brackets).StringFixed(4),
				calculation.EffectiveRate(r.TaxableIncome, brackets).StringFixed(4),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
