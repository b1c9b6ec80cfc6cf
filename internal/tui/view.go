package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/output"
	"github.com/rgehrsitz/rothgo/internal/tui/components"
	"github.com/rgehrsitz/rothgo/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage)
	case m.current() == nil:
		content = tuistyles.BorderStyle.Render("No projections loaded. Press r to reload.")
	default:
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderStrategyTabs(), m.renderPanel())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("ROTHGO - Roth Conversion Planner")

	parts := []string{}
	if m.scenario != nil {
		parts = append(parts, m.scenario.Name)
	}
	if run := m.current(); run != nil {
		parts = append(parts, run.Name, m.view.String())
	}
	if len(parts) == 0 {
		parts = append(parts, m.scenarioPath)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(strings.Join(parts, " / ")))
}

// renderStatusBar renders the key help
func (m Model) renderStatusBar() string {
	return tuistyles.StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))
}

// renderError renders an error message
func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress r to reload or any key to continue...", m.err.Error()),
	)
}

// renderStrategyTabs lists the strategy cycle with the selection highlighted
func (m Model) renderStrategyTabs() string {
	tabs := make([]string, 0, len(m.runs))
	for i, run := range m.runs {
		if i == m.selected {
			tabs = append(tabs, tuistyles.SelectedItemStyle.Render("["+run.Name+"]"))
		} else {
			tabs = append(tabs, tuistyles.UnselectedItemStyle.Render(" "+run.Name+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderPanel() string {
	switch m.view {
	case ViewChart:
		return m.renderChart()
	case ViewTable:
		return m.renderTable()
	default:
		return m.renderSummary()
	}
}

// renderSummary shows metric cards against the baseline and the recommendations
func (m Model) renderSummary() string {
	run, base := m.current(), m.baseline()
	r := run.Result

	estate := components.NewDollarCard("Net Estate to Heirs", r.FinalEstate)
	tax := components.NewDollarCard("Lifetime Tax", r.LifetimeTax)
	irmaa := components.NewDollarCard("Lifetime IRMAA", r.LifetimeIRMAA)
	converted := components.NewDollarCard("Total Converted", r.TotalConversions)
	roth := components.NewDollarCard("Final Roth IRA", r.FinalRoth)
	rmd := components.NewDollarCard("Lifetime RMDs", r.LifetimeRMD)

	if run != base {
		estate.WithDelta(r.EstateDiffFromBase, false)
		tax.WithDelta(r.TaxDiffFromBase, true)
		irmaa.WithDelta(r.IRMAADiffFromBase, true)
		rmd.WithDelta(r.RMDDiffFromBase, true)
		roth.WithDescription("Net benefit " + output.FormatDelta(r.NetBenefit))
	}

	cardWidth := 24
	columns := max(m.width/(cardWidth+2), 1)
	cards := []*components.MetricCard{estate, tax, irmaa, converted, roth, rmd}
	for _, c := range cards {
		c.WithWidth(cardWidth)
	}

	var sb strings.Builder
	sb.WriteString(components.MetricGrid(cards, columns))
	sb.WriteString("\n")

	if r.NegativeBalanceYears > 0 {
		sb.WriteString(tuistyles.TableHighlightStyle.Render(
			fmt.Sprintf("Traditional IRA is overdrawn in %d year(s)", r.NegativeBalanceYears)))
		sb.WriteString("\n")
	}

	if r.Projection != nil {
		analysis := calculation.AnalyzeIRMAARisk(r.Projection.Records, m.params)
		sb.WriteString(tuistyles.InfoStyle.Render(fmt.Sprintf("IRMAA: %d year(s) over, %d within warning range",
			len(analysis.YearsWithBreaches), len(analysis.YearsWithWarnings))))
		sb.WriteString("\n")
	}

	if m.comparison != nil {
		for _, rec := range m.comparison.Recommendations {
			sb.WriteString(tuistyles.SubtitleStyle.Render("• " + rec))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderChart plots the selected strategy against the baseline
func (m Model) renderChart() string {
	run, base := m.current(), m.baseline()
	if run.Result.Projection == nil || base.Result.Projection == nil {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	records := run.Result.Projection.Records
	baseRecords := base.Result.Projection.Records

	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = fmt.Sprintf("%d", r.Year)
	}

	width := max(m.width-4, 30)
	height := max((m.height-14)/2, 5)

	roth := components.NewASCIIChart("Roth IRA Balance").WithSize(width, height).WithLabels(labels)
	estate := components.NewASCIIChart("Net Estate to Heirs").WithSize(width, height).WithLabels(labels)

	var rothA, rothB, estateA, estateB []decimal.Decimal
	for _, r := range records {
		rothA = append(rothA, r.RothBalance)
		estateA = append(estateA, r.EstateValue)
	}
	for _, r := range baseRecords {
		rothB = append(rothB, r.RothBalance)
		estateB = append(estateB, r.EstateValue)
	}

	if run != base {
		roth.AddDecimalSeries(run.Name, rothA, tuistyles.ColorChartLine1)
		estate.AddDecimalSeries(run.Name, estateA, tuistyles.ColorChartLine1)
	}
	roth.AddDecimalSeries(base.Name, rothB, tuistyles.ColorChartLine2)
	estate.AddDecimalSeries(base.Name, estateB, tuistyles.ColorChartLine2)

	return lipgloss.JoinVertical(lipgloss.Left, roth.Render(), estate.Render())
}

// renderTable shows a scrolling window of the year-by-year records
func (m Model) renderTable() string {
	run := m.current()
	if run.Result.Projection == nil {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	records := run.Result.Projection.Records

	const rowFormat = "%-5s %-4s %-7s %12s %12s %11s %10s %10s %7s %12s"
	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf(rowFormat,
		"Year", "Age", "Status", "Traditional", "Roth", "Conversion", "RMD", "Tax", "IRMAA", "Estate")))
	sb.WriteString("\n")

	end := min(m.offset+m.tableRows(), len(records))
	for _, r := range records[m.offset:end] {
		line := fmt.Sprintf(rowFormat,
			fmt.Sprintf("%d", r.Year),
			fmt.Sprintf("%d", r.Age),
			r.FilingStatus.Label(),
			output.FormatCurrencyWhole(r.TraditionalBalance),
			output.FormatCurrencyWhole(r.RothBalance),
			output.FormatCurrencyWhole(r.Conversion),
			output.FormatCurrencyWhole(r.RMD),
			output.FormatCurrencyWhole(r.Tax),
			output.FormatCurrencyWhole(r.IRMAASurcharge),
			output.FormatCurrencyWhole(r.EstateValue),
		)
		style := tuistyles.TableCellStyle
		if r.HasNegativeBalance() {
			style = tuistyles.TableHighlightStyle
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(records))))
	return sb.String()
}
