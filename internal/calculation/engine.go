package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionEngine runs the year-by-year Roth conversion projection. It holds
// only read-only tax tables and a logger, so one engine may serve concurrent
// projections.
type ProjectionEngine struct {
	Params domain.TaxParameters
	Logger Logger
	Debug  bool // Emit a trace line per projected year
}

// NewProjectionEngine creates an engine over the given tax tables.
func NewProjectionEngine(params domain.TaxParameters) *ProjectionEngine {
	return &ProjectionEngine{
		Params: params,
		Logger: NopLogger{},
	}
}

// NewDefaultProjectionEngine creates an engine over the built-in 2025 tables.
func NewDefaultProjectionEngine() *ProjectionEngine {
	return NewProjectionEngine(domain.DefaultTaxParameters())
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Validate checks every input once so the projection loop itself cannot fail.
func (pe *ProjectionEngine) Validate(profile domain.ClientProfile, strategy domain.StrategyChoice) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := pe.Params.Validate(); err != nil {
		return err
	}
	return validateStrategy(strategy, pe.Params)
}

// EffectiveFilingStatus returns Single from the survivor trigger year onward,
// otherwise the profile's own status.
func EffectiveFilingStatus(profile domain.ClientProfile, year int) domain.FilingStatus {
	if year >= profile.WidowTriggerYear() {
		return domain.FilingSingle
	}
	return profile.FilingStatus
}

// Project produces one record per year from the first projected year until
// life expectancy. The profile is not modified.
func (pe *ProjectionEngine) Project(profile domain.ClientProfile, strategy domain.StrategyChoice) ([]domain.YearlyRecord, error) {
	if err := pe.Validate(profile, strategy); err != nil {
		return nil, err
	}

	log := pe.logger()
	params := pe.Params
	growth := decimal.NewFromInt(1).Add(profile.GrowthRate)
	startYear := profile.FirstYear()
	horizon := profile.Horizon()

	traditional := profile.TraditionalBalance
	roth := profile.RothBalance
	overdrawn := false

	records := make([]domain.YearlyRecord, 0, horizon)
	for i := 0; i < horizon; i++ {
		year := startYear + i
		age := profile.CurrentAge + i
		status := EffectiveFilingStatus(profile, year)

		qcd := QCDOffset(profile, age)
		rmd := CalculateRMD(traditional, age, qcd)
		ss := SocialSecurityIncome(profile, year, age)
		grossBase := profile.EarnedIncome.Add(profile.OtherIncome).Add(rmd).Add(ss)
		deduction := params.DeductionFor(status)
		conversion := ResolveConversion(strategy, status, grossBase, deduction, params)

		// Growth applies to the start-of-year balance before money moves.
		traditional = traditional.Mul(growth).Sub(rmd).Sub(conversion)
		roth = roth.Mul(growth).Add(conversion)

		taxable := grossBase.Add(conversion).Sub(deduction)
		tax := ProgressiveTax(taxable, params.BracketsFor(status))
		surcharge := IRMAASurcharge(taxable, status, params)
		estate := EstateValue(traditional, roth, params.HeirTaxRate)

		if pe.Debug {
			log.Debugf("year=%d age=%d status=%s rmd=%s ss=%s conversion=%s taxable=%s tax=%s irmaa=%s",
				year, age, status, rmd.StringFixed(2), ss.StringFixed(2), conversion.StringFixed(2),
				taxable.StringFixed(2), tax.StringFixed(2), surcharge.StringFixed(2))
		}
		if !overdrawn && traditional.IsNegative() {
			overdrawn = true
			log.Warnf("%s: traditional balance goes negative in %d (%s)", strategy.Name(), year, traditional.StringFixed(2))
		}

		records = append(records, domain.YearlyRecord{
			Year:               year,
			Age:                age,
			FilingStatus:       status,
			TraditionalBalance: traditional,
			RothBalance:        roth,
			RMD:                rmd,
			Conversion:         conversion,
			SSIncome:           ss,
			QCDOffset:          qcd,
			GrossBaseIncome:    grossBase,
			StandardDeduction:  deduction,
			TaxableIncome:      taxable,
			Tax:                tax,
			IRMAASurcharge:     surcharge,
			EstateValue:        estate,
		})
	}

	return records, nil
}

// Run projects the strategy and attaches its summary.
func (pe *ProjectionEngine) Run(profile domain.ClientProfile, strategy domain.StrategyChoice) (*domain.Projection, error) {
	records, err := pe.Project(profile, strategy)
	if err != nil {
		return nil, fmt.Errorf("projection %q failed: %w", strategyName(strategy), err)
	}
	return &domain.Projection{
		StrategyName: strategy.Name(),
		StrategyKey:  strategy.Key(),
		Strategy:     strategy,
		Records:      records,
		Summary:      Summarize(records),
	}, nil
}

// Project runs a single projection with the given tables and no logging.
func Project(profile domain.ClientProfile, strategy domain.StrategyChoice, params domain.TaxParameters) ([]domain.YearlyRecord, error) {
	return NewProjectionEngine(params).Project(profile, strategy)
}

func strategyName(s domain.StrategyChoice) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}
