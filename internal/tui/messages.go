package tui

import (
	"github.com/rgehrsitz/rothgo/internal/compare"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// View selects what the main panel shows
type View int

const (
	ViewSummary View = iota
	ViewChart
	ViewTable
)

func (v View) String() string {
	switch v {
	case ViewSummary:
		return "Summary"
	case ViewChart:
		return "Chart"
	case ViewTable:
		return "Year Table"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ScenarioLoadedMsg signals the scenario file and tax tables have been read
type ScenarioLoadedMsg struct {
	Scenario *domain.Scenario
	Params   domain.TaxParameters
}

// ComparisonCompleteMsg carries every strategy run for the loaded scenario
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
