package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manualScenario = `name: "TUI household"
profile:
  filing_status: joint
  current_age: 60
  life_expectancy: 90
  traditional_ira: 800000
  roth_ira: 50000
  ss_benefit: 36000
  growth_rate: 0.05
strategy:
  type: manual
  amount: 40000
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// loadedModel runs the load and comparison commands synchronously.
func loadedModel(t *testing.T, content string) Model {
	t.Helper()

	m := NewModel(writeScenario(t, content), "")
	msg := m.Init()()
	require.IsType(t, ScenarioLoadedMsg{}, msg)

	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.loading)

	done := cmd()
	require.IsType(t, ComparisonCompleteMsg{}, done)
	next, _ = m.Update(done)
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsStrategyCycle(t *testing.T) {
	m := loadedModel(t, manualScenario)

	require.NoError(t, m.err)
	assert.False(t, m.loading)
	names := make([]string, 0, len(m.runs))
	for _, r := range m.runs {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"No Conversion", "Manual", "12% Bracket Fill", "22% Bracket Fill", "24% Bracket Fill", "Max to IRMAA Threshold",
	}, names)
	assert.Equal(t, 1, m.selected)
	assert.Len(t, m.current().Result.Projection.Records, 30)
}

func TestModel_NonManualScenarioSkipsOwnStrategy(t *testing.T) {
	m := loadedModel(t, `name: "fill"
profile:
  current_age: 60
  life_expectancy: 70
  traditional_ira: 500000
  growth_rate: 0.04
strategy:
  type: bracket_fill
  target_bracket: "22%"
`)
	require.Len(t, m.runs, 5)
	assert.Equal(t, "12% Bracket Fill", m.current().Name)
}

func TestModel_KeysCycleStrategies(t *testing.T) {
	m := loadedModel(t, manualScenario)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.selected)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, m.selected)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(m.runs)-1, m.selected, "wraps to the last strategy")
	m = press(t, m, runes("l"))
	assert.Equal(t, 0, m.selected, "wraps to the baseline")
}

func TestModel_Views(t *testing.T) {
	m := loadedModel(t, manualScenario)

	summary := m.View()
	assert.Contains(t, summary, "ROTHGO - Roth Conversion Planner")
	assert.Contains(t, summary, "TUI household / Manual / Summary")
	assert.Contains(t, summary, "Net Estate to Heirs")
	assert.Contains(t, summary, "Net benefit")

	m = press(t, m, runes("v"))
	assert.Equal(t, ViewChart, m.view)
	chart := m.View()
	assert.Contains(t, chart, "Roth IRA Balance")
	assert.Contains(t, chart, "Legend:")

	m = press(t, m, runes("v"))
	assert.Equal(t, ViewTable, m.view)
	table := m.View()
	assert.Contains(t, table, "Conversion")
	assert.Contains(t, table, "rows 1-18 of 30")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.offset)
	assert.Contains(t, m.View(), "rows 2-19 of 30")
	for i := 0; i < 50; i++ {
		m = press(t, m, runes("j"))
	}
	assert.Equal(t, 12, m.offset)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 11, m.offset)

	m = press(t, m, runes("v"))
	assert.Equal(t, ViewSummary, m.view)
	assert.Zero(t, m.offset)
}

func TestModel_WindowResizeAndHelp(t *testing.T) {
	m := loadedModel(t, manualScenario)

	m = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "reload")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	assert.Equal(t, 60, m.width)
	assert.Equal(t, 60, m.help.Width)
	assert.Equal(t, 8, m.tableRows())
}

func TestModel_Errors(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"), "")
	msg := m.Init()()
	require.IsType(t, ErrorMsg{}, msg)

	next, _ := m.Update(msg)
	m = next.(Model)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")

	m = press(t, m, runes("x"))
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "No projections loaded")

	next, _ = m.Update(ComparisonCompleteMsg{Err: errors.New("boom")})
	m = next.(Model)
	assert.EqualError(t, m.err, "boom")

	next, cmd := m.Update(runes("r"))
	m = next.(Model)
	assert.NoError(t, m.err)
	assert.True(t, m.loading)
	require.NotNil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t, manualScenario)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
