package calculation

import (
	"testing"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgressiveTax(t *testing.T) {
	params := domain.DefaultTaxParameters()
	joint := params.BracketsFor(domain.FilingJoint)
	single := params.BracketsFor(domain.FilingSingle)

	tests := []struct {
		name     string
		income   decimal.Decimal
		brackets []domain.TaxBracket
		expected decimal.Decimal
	}{
		{"negative income", dec(-5000), joint, decimal.Zero},
		{"zero income", decimal.Zero, joint, decimal.Zero},
		{"first bracket only", dec(10000), joint, dec(1000)},
		{"top of 12% joint", dec(94300), joint, dec(10852)},
		{"into 22% single", dec(50000), single, dec(6053)},
		{"open-ended top bracket", dec(400000), joint, dec(83373)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressiveTax(tt.income, tt.brackets)
			assert.True(t, got.Equal(tt.expected), "got %s want %s", got, tt.expected)
		})
	}
}

func TestProgressiveTax_NoCliffAtFloors(t *testing.T) {
	params := domain.DefaultTaxParameters()
	for _, fs := range []domain.FilingStatus{domain.FilingJoint, domain.FilingSingle} {
		brackets := params.BracketsFor(fs)
		delta := dec(1)
		for _, b := range brackets[1:] {
			atFloor := ProgressiveTax(b.Floor, brackets)
			above := ProgressiveTax(b.Floor.Add(delta), brackets)
			// crossing a floor only changes the rate on the marginal dollar
			assert.True(t, above.Sub(atFloor).Equal(b.Rate.Mul(delta)), "%s floor %s", fs, b.Floor)
		}
	}
}

func TestProgressiveTax_Monotonic(t *testing.T) {
	brackets := domain.DefaultTaxParameters().BracketsFor(domain.FilingJoint)
	prev := decimal.Zero
	for income := int64(0); income <= 500000; income += 2500 {
		tax := ProgressiveTax(dec(income), brackets)
		assert.True(t, tax.GreaterThanOrEqual(prev), "income %d", income)
		prev = tax
	}
}

func TestMarginalAndEffectiveRate(t *testing.T) {
	brackets := domain.DefaultTaxParameters().BracketsFor(domain.FilingJoint)
	assert.True(t, MarginalRate(dec(50000), brackets).Equal(decimal.NewFromFloat(0.12)))
	assert.True(t, MarginalRate(dec(94300), brackets).Equal(decimal.NewFromFloat(0.12)))
	assert.True(t, MarginalRate(dec(94301), brackets).Equal(decimal.NewFromFloat(0.22)))
	assert.True(t, MarginalRate(decimal.Zero, brackets).Equal(decimal.NewFromFloat(0.10)))

	assert.True(t, EffectiveRate(decimal.Zero, brackets).IsZero())
	assert.True(t, EffectiveRate(dec(10000), brackets).Equal(decimal.NewFromFloat(0.10)))
}

func TestCalculateRMD(t *testing.T) {
	assert.True(t, CalculateRMD(dec(500000), 72, decimal.Zero).IsZero())
	assert.True(t, CalculateRMD(dec(500000), 73, decimal.Zero).Equal(dec(20000)))
	assert.True(t, CalculateRMD(dec(500000), 80, dec(5000)).Equal(dec(15000)))
	assert.True(t, CalculateRMD(dec(100000), 75, dec(10000)).IsZero(), "QCD larger than RMD clamps to zero")
	assert.True(t, CalculateRMD(dec(-1000), 75, decimal.Zero).IsZero())
}

func TestQCDOffset(t *testing.T) {
	p := createTestProfile()
	assert.True(t, QCDOffset(p, 75).IsZero())

	p.QCDEnabled = true
	p.QCDStartAge = 70
	p.QCDAnnualAmount = dec(8000)
	assert.True(t, QCDOffset(p, 69).IsZero())
	assert.True(t, QCDOffset(p, 70).Equal(dec(8000)))
}

func TestSocialSecurityIncome(t *testing.T) {
	p := createTestProfile()
	p.YearsUntilSurvivorSingle = 20

	assert.True(t, SocialSecurityIncome(p, 2025, 65).IsZero())
	assert.True(t, SocialSecurityIncome(p, 2027, 67).Equal(dec(25000)))
	assert.True(t, SocialSecurityIncome(p, 2045, 85).Equal(dec(21250)))
}

func TestEstateValue(t *testing.T) {
	got := EstateValue(dec(400000), dec(100000), decimal.NewFromFloat(0.25))
	assert.True(t, got.Equal(dec(400000)))

	got = EstateValue(dec(-40000), dec(100000), decimal.NewFromFloat(0.25))
	assert.True(t, got.Equal(dec(70000)))
}

func TestResolveConversion(t *testing.T) {
	params := domain.DefaultTaxParameters()
	gross := dec(30000)
	ded := dec(29200)

	assert.True(t, ResolveConversion(domain.Manual{Amount: dec(12000)}, domain.FilingJoint, gross, ded, params).Equal(dec(12000)))
	assert.True(t, ResolveConversion(domain.BracketFill{Target: domain.Bracket12}, domain.FilingJoint, gross, ded, params).Equal(dec(35100)))
	assert.True(t, ResolveConversion(domain.BracketFill{Target: domain.Bracket24}, domain.FilingJoint, gross, ded, params).Equal(dec(324700)))
	assert.True(t, ResolveConversion(domain.MaxToIRMAAThreshold{}, domain.FilingSingle, gross, dec(14600), params).Equal(dec(58400)))

	// already above the ceiling
	assert.True(t, ResolveConversion(domain.BracketFill{Target: domain.Bracket12}, domain.FilingJoint, dec(200000), ded, params).IsZero())
}
