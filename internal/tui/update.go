package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ScenarioLoadedMsg:
		m.scenario = msg.Scenario
		m.params = msg.Params
		m.loading = true
		m.loadingMessage = "Projecting strategies..."
		return m, runComparisonCmd(msg.Scenario, msg.Params, m.logger)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		m.runs = buildRuns(msg.Set)
		m.selected = 0
		if len(m.runs) > 1 {
			m.selected = 1
		}
		m.offset = 0
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		if key.Matches(msg, m.keys.Reload) {
			return m.reload()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextStrategy):
		if n := len(m.runs); n > 0 {
			m.selected = (m.selected + 1) % n
		}

	case key.Matches(msg, m.keys.PrevStrategy):
		if n := len(m.runs); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}

	case key.Matches(msg, m.keys.NextView):
		m.view = (m.view + 1) % 3
		m.offset = 0

	case key.Matches(msg, m.keys.Up):
		if m.offset > 0 {
			m.offset--
		}

	case key.Matches(msg, m.keys.Down):
		m.offset++
		m.clampOffset()

	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingMessage = "Reloading scenario..."
	return m, loadScenarioCmd(m.scenarioPath, m.taxParamsPath)
}

// clampOffset keeps the year table from scrolling past its last row
func (m *Model) clampOffset() {
	run := m.current()
	if run == nil || run.Result.Projection == nil {
		m.offset = 0
		return
	}
	limit := max(len(run.Result.Projection.Records)-m.tableRows(), 0)
	m.offset = min(max(m.offset, 0), limit)
}

// tableRows is how many year rows fit under the chrome
func (m Model) tableRows() int {
	return max(m.height-12, 3)
}
