package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StrategyChoice selects how much Traditional money is converted to Roth each year.
// The set of variants is closed: Manual, BracketFill and MaxToIRMAAThreshold.
type StrategyChoice interface {
	// Name is the human readable label shown in reports.
	Name() string
	// Key is the stable machine identifier used in CLI flags and files.
	Key() string
	Validate() error
	isStrategy()
}

// Manual converts a fixed amount every year. The amount must not be negative.
type Manual struct {
	Amount decimal.Decimal
}

func (Manual) isStrategy() {}

func (m Manual) Name() string {
	if m.Amount.IsZero() {
		return "No Conversion"
	}
	return "Manual"
}

func (Manual) Key() string { return "manual" }

func (m Manual) Validate() error {
	if m.Amount.IsNegative() {
		return fmt.Errorf("%w: manual conversion amount cannot be negative", ErrInvalidStrategy)
	}
	return nil
}

// BracketFill converts just enough to reach the top of the target bracket.
type BracketFill struct {
	Target BracketTarget
}

func (BracketFill) isStrategy() {}

func (b BracketFill) Name() string { return fmt.Sprintf("%s Bracket Fill", b.Target) }

func (BracketFill) Key() string { return "bracket_fill" }

func (b BracketFill) Validate() error {
	if !b.Target.IsValid() {
		return fmt.Errorf("%w: unsupported bracket target %q", ErrInvalidStrategy, string(b.Target))
	}
	return nil
}

// MaxToIRMAAThreshold converts up to the IRMAA threshold of the effective filing status.
type MaxToIRMAAThreshold struct{}

func (MaxToIRMAAThreshold) isStrategy() {}

func (MaxToIRMAAThreshold) Name() string { return "Max to IRMAA Threshold" }

func (MaxToIRMAAThreshold) Key() string { return "irmaa_cap" }

func (MaxToIRMAAThreshold) Validate() error { return nil }

// NoConversion is the baseline strategy.
func NoConversion() StrategyChoice {
	return Manual{Amount: decimal.Zero}
}

// BracketTarget names a bracket whose ceiling a BracketFill strategy fills to.
type BracketTarget string

const (
	Bracket12 BracketTarget = "12%"
	Bracket22 BracketTarget = "22%"
	Bracket24 BracketTarget = "24%"
)

// SupportedBracketTargets lists the targets in ascending order.
var SupportedBracketTargets = []BracketTarget{Bracket12, Bracket22, Bracket24}

func (t BracketTarget) IsValid() bool {
	switch t {
	case Bracket12, Bracket22, Bracket24:
		return true
	}
	return false
}

// Rate returns the marginal rate of the target bracket as a fraction.
func (t BracketTarget) Rate() decimal.Decimal {
	switch t {
	case Bracket12:
		return decimal.NewFromFloat(0.12)
	case Bracket22:
		return decimal.NewFromFloat(0.22)
	case Bracket24:
		return decimal.NewFromFloat(0.24)
	}
	return decimal.Zero
}

// ParseBracketTarget accepts "22%", "22", "0.22" and "fill_22" style values.
func ParseBracketTarget(s string) (BracketTarget, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "fill_")
	v = strings.TrimSuffix(v, "%")
	switch v {
	case "12", "0.12":
		return Bracket12, nil
	case "22", "0.22":
		return Bracket22, nil
	case "24", "0.24":
		return Bracket24, nil
	}
	return "", fmt.Errorf("%w: unsupported bracket target %q (expected 12%%, 22%% or 24%%)", ErrInvalidStrategy, s)
}

// ParseStrategy resolves a strategy from its key or its menu label.
// amount is used by Manual; target by BracketFill.
func ParseStrategy(name string, amount decimal.Decimal, target string) (StrategyChoice, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "manual", "fixed":
		return Manual{Amount: amount}, nil
	case "none", "no_conversion", "no conversion", "baseline":
		return NoConversion(), nil
	case "bracket_fill", "bracket", "fill":
		t, err := ParseBracketTarget(target)
		if err != nil {
			return nil, err
		}
		return BracketFill{Target: t}, nil
	case "12% bracket fill", "fill_12":
		return BracketFill{Target: Bracket12}, nil
	case "22% bracket fill", "fill_22":
		return BracketFill{Target: Bracket22}, nil
	case "24% bracket fill", "fill_24":
		return BracketFill{Target: Bracket24}, nil
	case "irmaa_cap", "irmaa", "max to irmaa threshold", "max_to_irmaa_threshold":
		return MaxToIRMAAThreshold{}, nil
	}
	return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidStrategy, name)
}

// StrategyConfig is the serialized form of a StrategyChoice in scenario files.
type StrategyConfig struct {
	Type          string          `yaml:"type" json:"type"`
	Amount        decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	TargetBracket string          `yaml:"target_bracket,omitempty" json:"target_bracket,omitempty"`
}

// Resolve converts the config into a validated StrategyChoice.
func (c StrategyConfig) Resolve() (StrategyChoice, error) {
	s, err := ParseStrategy(c.Type, c.Amount, c.TargetBracket)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// StrategyConfigFor is the inverse of Resolve.
func StrategyConfigFor(s StrategyChoice) StrategyConfig {
	switch v := s.(type) {
	case Manual:
		return StrategyConfig{Type: v.Key(), Amount: v.Amount}
	case BracketFill:
		return StrategyConfig{Type: v.Key(), TargetBracket: string(v.Target)}
	case MaxToIRMAAThreshold:
		return StrategyConfig{Type: v.Key()}
	}
	return StrategyConfig{}
}
