package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestScenario() *domain.Scenario {
	p := domain.DefaultClientProfile()
	p.CurrentAge = 62
	p.LifeExpectancy = 90
	p.TraditionalBalance = decimal.NewFromInt(1000000)
	p.RothBalance = decimal.NewFromInt(100000)
	p.SSBenefit = decimal.NewFromInt(40000)
	p.GrowthRate = decimal.NewFromFloat(0.05)

	return &domain.Scenario{
		Name:     "Test",
		Profile:  p,
		Strategy: domain.StrategyConfigFor(domain.BracketFill{Target: domain.Bracket22}),
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := NewCompareEngine(calculation.NewDefaultProjectionEngine())

	compSet, err := ce.Compare(context.Background(), createTestScenario(), CompareOptions{
		Templates: []string{"irmaa_cap", "delay_ss_2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Test (no conversion)", compSet.BaseScenarioName)
	assert.NotEmpty(t, compSet.ReportID)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "No Conversion", compSet.BaseResult.StrategyName)
	assert.True(t, compSet.BaseResult.TotalConversions.IsZero())

	require.Len(t, compSet.AlternativeResults, 3)
	assert.Equal(t, "Test", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "22% Bracket Fill", compSet.AlternativeResults[0].StrategyName)
	assert.Equal(t, "irmaa_cap", compSet.AlternativeResults[1].ScenarioName)
	assert.Equal(t, "Max to IRMAA Threshold", compSet.AlternativeResults[1].StrategyName)
	assert.Equal(t, "delay_ss_2", compSet.AlternativeResults[2].ScenarioName)
	assert.Equal(t, 69, compSet.AlternativeResults[2].SSClaimAge)

	for _, alt := range compSet.AlternativeResults {
		assert.True(t, alt.TotalConversions.IsPositive(), alt.ScenarioName)
		want := calculation.NetBenefit(alt.Projection.Summary, compSet.BaseResult.Projection.Summary)
		assert.True(t, alt.NetBenefit.Equal(want), alt.ScenarioName)
		assert.True(t, alt.EstateDiffFromBase.Equal(alt.FinalEstate.Sub(compSet.BaseResult.FinalEstate)))
	}
	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompareEngine_CompareMatchesSequentialRuns(t *testing.T) {
	pe := calculation.NewDefaultProjectionEngine()
	ce := NewCompareEngine(pe)
	sc := createTestScenario()

	parallel, err := ce.Compare(context.Background(), sc, CompareOptions{Templates: []string{"fill_12", "fill_24", "irmaa_cap"}})
	require.NoError(t, err)
	sequential, err := ce.Compare(context.Background(), sc, CompareOptions{Templates: []string{"fill_12", "fill_24", "irmaa_cap"}, Concurrency: 1})
	require.NoError(t, err)

	require.Len(t, parallel.AlternativeResults, len(sequential.AlternativeResults))
	for i := range parallel.AlternativeResults {
		assert.Equal(t, sequential.AlternativeResults[i].ScenarioName, parallel.AlternativeResults[i].ScenarioName)
		assert.True(t, sequential.AlternativeResults[i].FinalEstate.Equal(parallel.AlternativeResults[i].FinalEstate))
	}

	direct, err := pe.Run(sc.Profile, domain.BracketFill{Target: domain.Bracket12})
	require.NoError(t, err)
	assert.True(t, parallel.AlternativeResults[1].LifetimeTax.Equal(direct.Summary.TotalTax))
}

func TestCompareEngine_BaselineScenarioIsNotRepeated(t *testing.T) {
	sc := createTestScenario()
	sc.Strategy = domain.StrategyConfigFor(domain.NoConversion())

	ce := NewCompareEngine(calculation.NewDefaultProjectionEngine())
	compSet, err := ce.Compare(context.Background(), sc, CompareOptions{Templates: []string{"fill_22"}})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "fill_22", compSet.AlternativeResults[0].ScenarioName)

	compSet, err = ce.Compare(context.Background(), createTestScenario(), CompareOptions{SkipOwn: true})
	require.NoError(t, err)
	assert.Empty(t, compSet.AlternativeResults)
	assert.Empty(t, compSet.Recommendations)
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewDefaultProjectionEngine())

	_, err := ce.Compare(context.Background(), nil, CompareOptions{})
	assert.Error(t, err)

	_, err = ce.Compare(context.Background(), createTestScenario(), CompareOptions{Templates: []string{"nonexistent"}})
	assert.ErrorContains(t, err, "template nonexistent not found")

	invalid := createTestScenario()
	invalid.Profile.LifeExpectancy = invalid.Profile.CurrentAge
	_, err = ce.Compare(context.Background(), invalid, CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.Compare(ctx, createTestScenario(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	ce := NewCompareEngine(calculation.NewDefaultProjectionEngine())

	base := createTestScenario()
	base.Name = "Fill 22"
	alt := createTestScenario()
	alt.Name = "Fill 24"
	alt.Strategy = domain.StrategyConfigFor(domain.BracketFill{Target: domain.Bracket24})

	compSet, err := ce.CompareScenarios(context.Background(), base, []*domain.Scenario{alt})
	require.NoError(t, err)
	assert.Equal(t, "Fill 22", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.True(t, compSet.AlternativeResults[0].TotalConversions.GreaterThan(compSet.BaseResult.TotalConversions))

	_, err = ce.CompareScenarios(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestComparisonSet_ToProjectionSet(t *testing.T) {
	ce := NewCompareEngine(calculation.NewDefaultProjectionEngine())
	compSet, err := ce.Compare(context.Background(), createTestScenario(), CompareOptions{Templates: []string{"irmaa_cap"}})
	require.NoError(t, err)

	set := compSet.ToProjectionSet()
	assert.Equal(t, compSet.ReportID, set.ReportID)
	require.Len(t, set.Projections, 3)
	assert.Equal(t, "Test", set.Primary().StrategyName)
	assert.Equal(t, "irmaa_cap", set.Projections[1].StrategyName)

	base := set.Baseline()
	require.NotNil(t, base)
	assert.Equal(t, "No Conversion", base.StrategyName)
	assert.Equal(t, "Max to IRMAA Threshold", compSet.AlternativeResults[1].Projection.StrategyName, "source projection is not renamed")
}
