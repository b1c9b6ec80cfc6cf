package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status used to select brackets,
// deductions and IRMAA thresholds for a projection year.
type FilingStatus string

const (
	FilingJoint  FilingStatus = "joint"
	FilingSingle FilingStatus = "single"
)

// DefaultStartYear is the first projected calendar year when a profile does not set one.
const DefaultStartYear = 2025

// IsValid reports whether the status is one of the supported values.
func (fs FilingStatus) IsValid() bool {
	return fs == FilingJoint || fs == FilingSingle
}

// Label returns the short label used in tables.
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingJoint:
		return "MFJ"
	case FilingSingle:
		return "Single"
	default:
		return "Unknown"
	}
}

// ParseFilingStatus accepts the common spellings of the two supported statuses.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "joint", "mfj", "married_filing_jointly", "married filing jointly":
		return FilingJoint, nil
	case "single":
		return FilingSingle, nil
	default:
		return "", fmt.Errorf("unknown filing status %q (expected joint or single)", s)
	}
}

// UnmarshalText lets scenario files use any spelling ParseFilingStatus accepts.
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	v, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = v
	return nil
}

// ClientProfile holds every household input the projection engine reads.
// Values are never modified by the engine.
type ClientProfile struct {
	FilingStatus   FilingStatus `yaml:"filing_status" json:"filing_status"`
	StartYear      int          `yaml:"start_year" json:"start_year"`
	CurrentAge     int          `yaml:"current_age" json:"current_age"`
	LifeExpectancy int          `yaml:"life_expectancy" json:"life_expectancy"`

	TraditionalBalance decimal.Decimal `yaml:"traditional_ira" json:"traditional_ira"`
	RothBalance        decimal.Decimal `yaml:"roth_ira" json:"roth_ira"`

	EarnedIncome decimal.Decimal `yaml:"earned_income" json:"earned_income"`
	OtherIncome  decimal.Decimal `yaml:"other_income" json:"other_income"`

	SSBenefit      decimal.Decimal `yaml:"ss_benefit" json:"ss_benefit"`
	SSClaimAge     int             `yaml:"ss_claim_age" json:"ss_claim_age"`
	SSDelayEnabled bool            `yaml:"ss_delay_enabled" json:"ss_delay_enabled"`
	SSDelayYears   int             `yaml:"ss_delay_years" json:"ss_delay_years"`

	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`

	SpouseAge                int `yaml:"spouse_age" json:"spouse_age"`
	YearsUntilSurvivorSingle int `yaml:"years_until_survivor_single" json:"years_until_survivor_single"`

	QCDEnabled      bool            `yaml:"qcd_enabled" json:"qcd_enabled"`
	QCDStartAge     int             `yaml:"qcd_start_age" json:"qcd_start_age"`
	QCDAnnualAmount decimal.Decimal `yaml:"qcd_annual_amount" json:"qcd_annual_amount"`
}

// DefaultClientProfile returns the form defaults a scenario file is decoded on top of.
func DefaultClientProfile() ClientProfile {
	return ClientProfile{
		FilingStatus:             FilingJoint,
		StartYear:                DefaultStartYear,
		SSClaimAge:               67,
		SpouseAge:                65,
		YearsUntilSurvivorSingle: 10,
		QCDStartAge:              70,
	}
}

// FirstYear returns the first projected calendar year.
func (p ClientProfile) FirstYear() int {
	if p.StartYear == 0 {
		return DefaultStartYear
	}
	return p.StartYear
}

// Horizon is the number of projected years.
func (p ClientProfile) Horizon() int {
	return p.LifeExpectancy - p.CurrentAge
}

// WidowTriggerYear is the first calendar year the survivor files single.
func (p ClientProfile) WidowTriggerYear() int {
	return p.FirstYear() + p.YearsUntilSurvivorSingle
}

// EffectiveClaimAge is the Social Security claiming age after any modeled delay.
func (p ClientProfile) EffectiveClaimAge() int {
	if p.SSDelayEnabled {
		return p.SSClaimAge + p.SSDelayYears
	}
	return p.SSClaimAge
}

// Validate rejects profiles the engine cannot project.
func (p ClientProfile) Validate() error {
	if !p.FilingStatus.IsValid() {
		return fmt.Errorf("%w: filing status %q must be joint or single", ErrInvalidProfile, p.FilingStatus)
	}
	if p.CurrentAge < 0 {
		return fmt.Errorf("%w: current age cannot be negative", ErrInvalidProfile)
	}
	if p.LifeExpectancy <= p.CurrentAge {
		return fmt.Errorf("%w: life expectancy (%d) must be greater than current age (%d)", ErrInvalidProfile, p.LifeExpectancy, p.CurrentAge)
	}
	if p.GrowthRate.IsNegative() {
		return fmt.Errorf("%w: growth rate cannot be negative", ErrInvalidProfile)
	}
	if p.GrowthRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: growth rate must be less than 100%%", ErrInvalidProfile)
	}
	if p.StartYear < 0 {
		return fmt.Errorf("%w: start year cannot be negative", ErrInvalidProfile)
	}
	if p.TraditionalBalance.IsNegative() || p.RothBalance.IsNegative() {
		return fmt.Errorf("%w: starting balances cannot be negative", ErrInvalidProfile)
	}
	if p.YearsUntilSurvivorSingle < 0 {
		return fmt.Errorf("%w: years until survivor files single cannot be negative", ErrInvalidProfile)
	}
	if p.SSDelayEnabled && p.SSDelayYears < 0 {
		return fmt.Errorf("%w: social security delay years cannot be negative", ErrInvalidProfile)
	}
	if p.QCDEnabled && p.QCDAnnualAmount.IsNegative() {
		return fmt.Errorf("%w: QCD annual amount cannot be negative", ErrInvalidProfile)
	}
	return nil
}
