package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a progressive schedule. The bracket runs from
// Floor up to the Floor of the next row; the last row is unbounded.
type TaxBracket struct {
	Floor decimal.Decimal `yaml:"floor" json:"floor"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// IRMAAParameters describes the two-tier Medicare surcharge.
type IRMAAParameters struct {
	Thresholds      map[FilingStatus]decimal.Decimal `yaml:"thresholds" json:"thresholds"`
	Tier1Surcharge  decimal.Decimal                  `yaml:"tier1_surcharge" json:"tier1_surcharge"`
	Tier2Surcharge  decimal.Decimal                  `yaml:"tier2_surcharge" json:"tier2_surcharge"`
	Tier2Multiplier decimal.Decimal                  `yaml:"tier2_multiplier" json:"tier2_multiplier"`
}

// TaxParameters are the read-only tables shared by every projection.
type TaxParameters struct {
	Year              int                               `yaml:"year" json:"year"`
	Brackets          map[FilingStatus][]TaxBracket     `yaml:"brackets" json:"brackets"`
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	IRMAA             IRMAAParameters                   `yaml:"irmaa" json:"irmaa"`
	HeirTaxRate       decimal.Decimal                   `yaml:"heir_tax_rate" json:"heir_tax_rate"`
}

// DefaultTaxParameters returns the simplified 2025 tables.
func DefaultTaxParameters() TaxParameters {
	return TaxParameters{
		Year: 2025,
		Brackets: map[FilingStatus][]TaxBracket{
			FilingJoint: {
				{Floor: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
				{Floor: decimal.NewFromInt(23200), Rate: decimal.NewFromFloat(0.12)},
				{Floor: decimal.NewFromInt(94300), Rate: decimal.NewFromFloat(0.22)},
				{Floor: decimal.NewFromInt(201050), Rate: decimal.NewFromFloat(0.24)},
				{Floor: decimal.NewFromInt(383900), Rate: decimal.NewFromFloat(0.32)},
			},
			FilingSingle: {
				{Floor: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
				{Floor: decimal.NewFromInt(11600), Rate: decimal.NewFromFloat(0.12)},
				{Floor: decimal.NewFromInt(47150), Rate: decimal.NewFromFloat(0.22)},
				{Floor: decimal.NewFromInt(100525), Rate: decimal.NewFromFloat(0.24)},
				{Floor: decimal.NewFromInt(191950), Rate: decimal.NewFromFloat(0.32)},
			},
		},
		StandardDeduction: map[FilingStatus]decimal.Decimal{
			FilingJoint:  decimal.NewFromInt(29200),
			FilingSingle: decimal.NewFromInt(14600),
		},
		IRMAA: IRMAAParameters{
			Thresholds: map[FilingStatus]decimal.Decimal{
				FilingJoint:  decimal.NewFromInt(206000),
				FilingSingle: decimal.NewFromInt(103000),
			},
			Tier1Surcharge:  decimal.NewFromInt(3000),
			Tier2Surcharge:  decimal.NewFromInt(4500),
			Tier2Multiplier: decimal.NewFromFloat(1.5),
		},
		HeirTaxRate: decimal.NewFromFloat(0.25),
	}
}

// BracketsFor returns the schedule of the given status.
func (tp TaxParameters) BracketsFor(fs FilingStatus) []TaxBracket {
	return tp.Brackets[fs]
}

// DeductionFor returns the standard deduction of the given status.
func (tp TaxParameters) DeductionFor(fs FilingStatus) decimal.Decimal {
	return tp.StandardDeduction[fs]
}

// IRMAAThresholdFor returns the IRMAA threshold of the given status.
func (tp TaxParameters) IRMAAThresholdFor(fs FilingStatus) decimal.Decimal {
	return tp.IRMAA.Thresholds[fs]
}

// BracketCeiling returns the income at which the bracket taxed at rate ends,
// i.e. the floor of the following bracket. ok is false when no bracket has
// that rate or when it is the open-ended top bracket.
func (tp TaxParameters) BracketCeiling(fs FilingStatus, rate decimal.Decimal) (ceiling decimal.Decimal, ok bool) {
	brackets := tp.Brackets[fs]
	for i, b := range brackets {
		if b.Rate.Equal(rate) {
			if i+1 < len(brackets) {
				return brackets[i+1].Floor, true
			}
			return decimal.Zero, false
		}
	}
	return decimal.Zero, false
}

// Validate checks every table the engine reads.
func (tp TaxParameters) Validate() error {
	for _, fs := range []FilingStatus{FilingJoint, FilingSingle} {
		if err := validateBrackets(fs, tp.Brackets[fs]); err != nil {
			return err
		}
		if d, ok := tp.StandardDeduction[fs]; !ok || d.IsNegative() {
			return fmt.Errorf("%w: standard deduction for %s must be present and non-negative", ErrInvalidTaxParameters, fs)
		}
		if t, ok := tp.IRMAA.Thresholds[fs]; !ok || !t.IsPositive() {
			return fmt.Errorf("%w: IRMAA threshold for %s must be positive", ErrInvalidTaxParameters, fs)
		}
	}
	if tp.IRMAA.Tier1Surcharge.IsNegative() || tp.IRMAA.Tier2Surcharge.IsNegative() {
		return fmt.Errorf("%w: IRMAA surcharges cannot be negative", ErrInvalidTaxParameters)
	}
	if tp.IRMAA.Tier2Multiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: IRMAA tier-2 multiplier must be greater than 1", ErrInvalidTaxParameters)
	}
	if tp.HeirTaxRate.IsNegative() || tp.HeirTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: heir tax rate must be between 0 and 1", ErrInvalidTaxParameters)
	}
	return nil
}

func validateBrackets(fs FilingStatus, brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: no brackets for %s", ErrInvalidTaxParameters, fs)
	}
	if !brackets[0].Floor.IsZero() {
		return fmt.Errorf("%w: first %s bracket must start at 0", ErrInvalidTaxParameters, fs)
	}
	for i := 1; i < len(brackets); i++ {
		if !brackets[i].Floor.GreaterThan(brackets[i-1].Floor) {
			return fmt.Errorf("%w: %s bracket floors must be strictly increasing (row %d)", ErrInvalidTaxParameters, fs, i)
		}
		if !brackets[i].Rate.GreaterThan(brackets[i-1].Rate) {
			return fmt.Errorf("%w: %s bracket rates must be strictly increasing (row %d)", ErrInvalidTaxParameters, fs, i)
		}
	}
	return nil
}
