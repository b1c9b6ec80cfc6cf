package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/compare"
	"github.com/rgehrsitz/rothgo/internal/config"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// StrategyTemplates are the conversion plans the model cycles through in
// addition to the baseline and the scenario's own manual amount.
var StrategyTemplates = []string{"fill_12", "fill_22", "fill_24", "irmaa_cap"}

// strategyRun is one selectable entry in the strategy cycle
type strategyRun struct {
	Name   string
	Result *compare.ComparisonResult
}

// Model represents the entire application state
type Model struct {
	// Input files
	scenarioPath  string
	taxParamsPath string

	// Terminal dimensions
	width  int
	height int

	// Loaded data
	scenario   *domain.Scenario
	params     domain.TaxParameters
	comparison *compare.ComparisonSet
	runs       []strategyRun // baseline first

	// Current selections
	selected int
	view     View
	offset   int // first visible row of the year table

	keys   KeyMap
	help   help.Model
	logger calculation.Logger

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(scenarioPath, taxParamsPath string) Model {
	return Model{
		scenarioPath:   scenarioPath,
		taxParamsPath:  taxParamsPath,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		logger:         calculation.NopLogger{},
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Loading scenario...",
	}
}

// WithLogger routes engine logging through l.
func (m Model) WithLogger(l calculation.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadScenarioCmd(m.scenarioPath, m.taxParamsPath)
}

// loadScenarioCmd returns a command that reads the scenario and tax tables
func loadScenarioCmd(path, taxPath string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		scenario, params, err := parser.LoadFromFileWithTaxParameters(path, taxPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ScenarioLoadedMsg{Scenario: scenario, Params: params}
	}
}

// runComparisonCmd returns a command that projects every strategy in the cycle
func runComparisonCmd(scenario *domain.Scenario, params domain.TaxParameters, logger calculation.Logger) tea.Cmd {
	return func() tea.Msg {
		engine := calculation.NewProjectionEngine(params)
		engine.SetLogger(logger)

		options := compare.CompareOptions{Templates: StrategyTemplates}
		if own, err := scenario.ResolveStrategy(); err != nil || own.Key() != "manual" {
			options.SkipOwn = true
		}

		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), scenario, options)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// buildRuns flattens a comparison into the strategy cycle
func buildRuns(set *compare.ComparisonSet) []strategyRun {
	if set == nil || set.BaseResult == nil {
		return nil
	}
	runs := []strategyRun{{Name: set.BaseResult.StrategyName, Result: set.BaseResult}}
	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		runs = append(runs, strategyRun{Name: alt.StrategyName, Result: alt})
	}
	return runs
}

// current returns the selected run, or nil before the comparison completes
func (m Model) current() *strategyRun {
	if m.selected < 0 || m.selected >= len(m.runs) {
		return nil
	}
	return &m.runs[m.selected]
}

// baseline returns the no-conversion run
func (m Model) baseline() *strategyRun {
	if len(m.runs) == 0 {
		return nil
	}
	return &m.runs[0]
}
