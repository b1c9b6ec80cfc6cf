package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func createTestProfile() domain.ClientProfile {
	p := domain.DefaultClientProfile()
	p.FilingStatus = domain.FilingJoint
	p.CurrentAge = 65
	p.LifeExpectancy = 90
	p.TraditionalBalance = dec(500000)
	p.RothBalance = dec(100000)
	p.EarnedIncome = dec(20000)
	p.OtherIncome = dec(10000)
	p.SSBenefit = dec(25000)
	p.SSClaimAge = 67
	p.GrowthRate = decimal.NewFromFloat(0.06)
	return p
}

type recordingLogger struct {
	debug, warn []string
}

func (l *recordingLogger) Debugf(f string, a ...any) { l.debug = append(l.debug, fmt.Sprintf(f, a...)) }
func (l *recordingLogger) Infof(string, ...any)      {}
func (l *recordingLogger) Warnf(f string, a ...any)  { l.warn = append(l.warn, fmt.Sprintf(f, a...)) }
func (l *recordingLogger) Errorf(string, ...any)     {}

func TestProjectionEngine_SetLogger(t *testing.T) {
	pe := NewDefaultProjectionEngine()
	assert.IsType(t, NopLogger{}, pe.Logger)

	l := &recordingLogger{}
	pe.SetLogger(l)
	assert.Same(t, l, pe.Logger)

	pe.SetLogger(nil)
	assert.IsType(t, NopLogger{}, pe.Logger)
}

func TestProject_HorizonAndProgression(t *testing.T) {
	p := createTestProfile()
	records, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)
	require.Len(t, records, 25)

	for i, r := range records {
		assert.Equal(t, 2025+i, r.Year)
		assert.Equal(t, 65+i, r.Age)
	}

	p.StartYear = 2030
	records, err = Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)
	assert.Equal(t, 2030, records[0].Year)
}

func TestProject_NoConversionFirstYear(t *testing.T) {
	records, err := Project(createTestProfile(), domain.Manual{Amount: decimal.Zero}, domain.DefaultTaxParameters())
	require.NoError(t, err)

	first := records[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 65, first.Age)
	assert.Equal(t, domain.FilingJoint, first.FilingStatus)
	assert.True(t, first.TraditionalBalance.Equal(dec(530000)), "got %s", first.TraditionalBalance)
	assert.True(t, first.RothBalance.Equal(dec(106000)), "got %s", first.RothBalance)
	assert.True(t, first.Conversion.IsZero())
	assert.True(t, first.RMD.IsZero())
	assert.True(t, first.SSIncome.IsZero())
	assert.True(t, first.GrossBaseIncome.Equal(dec(30000)))
	assert.True(t, first.StandardDeduction.Equal(dec(29200)))
	assert.True(t, first.TaxableIncome.Equal(dec(800)))
	assert.True(t, first.Tax.Equal(dec(80)))
	assert.True(t, first.IRMAASurcharge.IsZero())
	// 530000 * 0.75 + 106000
	assert.True(t, first.EstateValue.Equal(dec(503500)), "got %s", first.EstateValue)
}

func TestProject_BracketFillTwelvePercent(t *testing.T) {
	records, err := Project(createTestProfile(), domain.BracketFill{Target: domain.Bracket12}, domain.DefaultTaxParameters())
	require.NoError(t, err)

	first := records[0]
	assert.True(t, first.Conversion.Equal(dec(35100)), "got %s", first.Conversion)
	assert.True(t, first.TraditionalBalance.Equal(dec(494900)), "got %s", first.TraditionalBalance)
	assert.True(t, first.RothBalance.Equal(dec(141100)), "got %s", first.RothBalance)
	assert.True(t, first.TaxableIncome.Equal(dec(35900)))
}

func TestProject_ManualZeroCompoundsRoth(t *testing.T) {
	p := createTestProfile()
	records, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)

	growth := decimal.NewFromInt(1).Add(p.GrowthRate)
	expected := p.RothBalance
	for i, r := range records {
		expected = expected.Mul(growth)
		assert.True(t, r.RothBalance.Equal(expected), "year %d: got %s want %s", r.Year, r.RothBalance, expected)
		assert.True(t, r.Conversion.IsZero(), "year index %d", i)
	}
}

func TestProject_RMDStartsAt73(t *testing.T) {
	records, err := Project(createTestProfile(), domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)

	for i, r := range records {
		if r.Age < RMDStartAge {
			assert.True(t, r.RMD.IsZero(), "age %d should have no RMD", r.Age)
			continue
		}
		prevTrad := createTestProfile().TraditionalBalance
		if i > 0 {
			prevTrad = records[i-1].TraditionalBalance
		}
		assert.True(t, r.RMD.IsPositive(), "age %d should have an RMD", r.Age)
		assert.True(t, r.RMD.Equal(prevTrad.Div(dec(RMDDivisor))), "age %d", r.Age)
	}
}

func TestProject_QCDOffsetsRMD(t *testing.T) {
	p := createTestProfile()
	p.QCDEnabled = true
	p.QCDStartAge = 70
	p.QCDAnnualAmount = dec(10000)

	withQCD, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)
	without, err := Project(createTestProfile(), domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)

	// age 70: QCD active, no RMD yet
	assert.True(t, withQCD[5].QCDOffset.Equal(dec(10000)))
	assert.True(t, withQCD[5].RMD.IsZero())
	assert.True(t, withQCD[4].QCDOffset.IsZero())

	// age 73: RMD reduced by the QCD
	expected := without[8].RMD.Sub(dec(10000))
	assert.True(t, withQCD[8].RMD.Equal(expected), "got %s want %s", withQCD[8].RMD, expected)
}

func TestProject_WidowTrigger(t *testing.T) {
	p := createTestProfile()
	p.YearsUntilSurvivorSingle = 10

	records, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)

	assert.Equal(t, domain.FilingJoint, records[9].FilingStatus)
	assert.True(t, records[9].SSIncome.Equal(dec(25000)))
	assert.True(t, records[9].StandardDeduction.Equal(dec(29200)))

	for _, r := range records[10:] {
		assert.Equal(t, domain.FilingSingle, r.FilingStatus, "year %d", r.Year)
		assert.True(t, r.SSIncome.Equal(dec(21250)), "year %d: got %s", r.Year, r.SSIncome)
		assert.True(t, r.StandardDeduction.Equal(dec(14600)))
	}
}

func TestProject_WidowBenefitBeforeClaimAge(t *testing.T) {
	p := createTestProfile()
	p.YearsUntilSurvivorSingle = 0
	p.SSClaimAge = 70

	records, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)
	assert.Equal(t, domain.FilingSingle, records[0].FilingStatus)
	assert.True(t, records[0].SSIncome.Equal(dec(21250)))
}

func TestProject_SocialSecurityDelay(t *testing.T) {
	p := createTestProfile()
	p.SSDelayEnabled = true
	p.SSDelayYears = 2

	records, err := Project(p, domain.NoConversion(), domain.DefaultTaxParameters())
	require.NoError(t, err)
	assert.True(t, records[3].SSIncome.IsZero(), "age 68")
	assert.True(t, records[4].SSIncome.Equal(dec(25000)), "age 69")
}

func TestProject_BracketFillUsesEffectiveStatusTable(t *testing.T) {
	p := createTestProfile()
	p.YearsUntilSurvivorSingle = 1

	records, err := Project(p, domain.BracketFill{Target: domain.Bracket22}, domain.DefaultTaxParameters())
	require.NoError(t, err)

	// 2026, age 66: single table, ceiling 100525, survivor benefit already paid
	r := records[1]
	require.Equal(t, domain.FilingSingle, r.FilingStatus)
	require.True(t, r.SSIncome.Equal(dec(21250)))
	expected := dec(100525).Sub(dec(51250)).Sub(dec(14600))
	assert.True(t, r.Conversion.Equal(expected), "got %s want %s", r.Conversion, expected)
}

func TestProject_IRMAACap(t *testing.T) {
	records, err := Project(createTestProfile(), domain.MaxToIRMAAThreshold{}, domain.DefaultTaxParameters())
	require.NoError(t, err)
	assert.True(t, records[0].Conversion.Equal(dec(146800)), "got %s", records[0].Conversion)
}

func TestProject_Idempotent(t *testing.T) {
	p := createTestProfile()
	pe := NewDefaultProjectionEngine()

	a, err := pe.Project(p, domain.BracketFill{Target: domain.Bracket22})
	require.NoError(t, err)
	b, err := pe.Project(p, domain.BracketFill{Target: domain.Bracket22})
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].TraditionalBalance.Equal(b[i].TraditionalBalance))
		assert.True(t, a[i].RothBalance.Equal(b[i].RothBalance))
		assert.True(t, a[i].Tax.Equal(b[i].Tax))
		assert.Equal(t, a[i].TraditionalBalance.String(), b[i].TraditionalBalance.String())
	}
	assert.True(t, p.TraditionalBalance.Equal(dec(500000)), "profile must not be mutated")
}

func TestProject_NegativeBalanceIsReportedNotRejected(t *testing.T) {
	pe := NewDefaultProjectionEngine()
	l := &recordingLogger{}
	pe.SetLogger(l)

	proj, err := pe.Run(createTestProfile(), domain.Manual{Amount: dec(1000000)})
	require.NoError(t, err)

	assert.True(t, proj.Records[0].TraditionalBalance.IsNegative())
	assert.Contains(t, proj.Summary.NegativeBalanceYears, 2025)
	require.Len(t, l.warn, 1)
	assert.Contains(t, l.warn[0], "2025")
}

func TestProject_NegativeManualAmountRejected(t *testing.T) {
	records, err := Project(createTestProfile(), domain.Manual{Amount: dec(-5000)}, domain.DefaultTaxParameters())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))
	assert.Nil(t, records)

	_, err = NewDefaultProjectionEngine().Run(createTestProfile(), domain.Manual{Amount: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
}

func TestProject_DebugTrace(t *testing.T) {
	pe := NewDefaultProjectionEngine()
	pe.Debug = true
	l := &recordingLogger{}
	pe.SetLogger(l)

	_, err := pe.Project(createTestProfile(), domain.NoConversion())
	require.NoError(t, err)
	assert.Len(t, l.debug, 25)
	assert.Contains(t, l.debug[0], "year=2025")
}

func TestProject_ValidationErrors(t *testing.T) {
	params := domain.DefaultTaxParameters()

	bad := createTestProfile()
	bad.LifeExpectancy = 60
	_, err := Project(bad, domain.NoConversion(), params)
	assert.True(t, errors.Is(err, domain.ErrInvalidProfile))

	_, err = Project(createTestProfile(), nil, params)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))

	_, err = Project(createTestProfile(), domain.BracketFill{Target: "35%"}, params)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))

	_, err = Project(createTestProfile(), domain.Manual{Amount: dec(-5000)}, params)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))

	// 24% is the top single bracket here, so it has no ceiling.
	truncated := domain.DefaultTaxParameters()
	truncated.Brackets[domain.FilingSingle] = truncated.Brackets[domain.FilingSingle][:4]
	_, err = Project(createTestProfile(), domain.BracketFill{Target: domain.Bracket24}, truncated)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrategy))

	broken := domain.DefaultTaxParameters()
	broken.HeirTaxRate = decimal.NewFromInt(2)
	_, err = Project(createTestProfile(), domain.NoConversion(), broken)
	assert.True(t, errors.Is(err, domain.ErrInvalidTaxParameters))
}

func TestRun_AttachesSummary(t *testing.T) {
	proj, err := NewDefaultProjectionEngine().Run(createTestProfile(), domain.BracketFill{Target: domain.Bracket12})
	require.NoError(t, err)
	assert.Equal(t, "12% Bracket Fill", proj.StrategyName)
	assert.Equal(t, "bracket_fill", proj.StrategyKey)
	assert.Equal(t, 25, proj.Summary.Years)
	assert.True(t, proj.Summary.FinalEstateValue.Equal(proj.Records[24].EstateValue))
	assert.Equal(t, 2033, proj.Summary.FirstRMDYear)
}
