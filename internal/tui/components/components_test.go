package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricCard_WithDelta(t *testing.T) {
	tests := []struct {
		name          string
		delta         int64
		lowerIsBetter bool
		wantPositive  bool
		wantChange    string
	}{
		{"estate up", 50000, false, true, "+$50,000"},
		{"estate down", -50000, false, false, "-$50,000"},
		{"tax up", 12000, true, false, "+$12,000"},
		{"tax down", -12000, true, true, "-$12,000"},
		{"unchanged", 0, true, true, "no change"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewMetricCard("Metric", "$1").WithDelta(decimal.NewFromInt(tt.delta), tt.lowerIsBetter)
			require.NotNil(t, card.Trend)
			assert.Equal(t, tt.wantPositive, card.Trend.IsPositive)
			assert.Equal(t, tt.wantChange, card.Trend.Change)
		})
	}
}

func TestMetricCard_Render(t *testing.T) {
	card := NewDollarCard("Net Estate", decimal.NewFromInt(1234567)).
		WithDelta(decimal.NewFromInt(1000), false).
		WithDescription("to heirs")

	rendered := card.Render()
	assert.Contains(t, rendered, "Net Estate")
	assert.Contains(t, rendered, "$1,234,567")
	assert.Contains(t, rendered, "+$1,000")
	assert.Contains(t, rendered, "to heirs")

	compact := card.RenderCompact()
	assert.Contains(t, compact, "Net Estate:")
	assert.NotContains(t, compact, "\n")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	twoRows := MetricGrid(cards, 2)
	oneRow := MetricGrid(cards, 3)
	assert.Greater(t, lipgloss.Height(twoRows), lipgloss.Height(oneRow))
	assert.Greater(t, lipgloss.Width(oneRow), lipgloss.Width(twoRows))
	assert.Equal(t, lipgloss.Height(MetricGrid(cards, 1)), lipgloss.Height(MetricGrid(cards, 0)))
}

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Roth IRA").
		WithSize(50, 8).
		WithLabels([]string{"2025", "2026", "2027", "2028", "2029"}).
		AddDecimalSeries("Strategy", []decimal.Decimal{
			decimal.NewFromInt(100000), decimal.NewFromInt(200000), decimal.NewFromInt(300000),
			decimal.NewFromInt(400000), decimal.NewFromInt(500000),
		}, "#50FA7B").
		AddSeries("Baseline", []float64{100000, 105000, 110000, 115000, 120000}, "#FF79C6")

	out := chart.Render()
	assert.Contains(t, out, "Roth IRA")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "Strategy")
	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "2029")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "■")
	assert.Equal(t, 8, strings.Count(out, "│"))
}

func TestASCIIChart_EdgeCases(t *testing.T) {
	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")
	assert.Contains(t, NewASCIIChart("").AddSeries("none", nil, "#fff").Render(), "No data to display")

	flat := NewASCIIChart("").WithSize(30, 4).AddSeries("flat", []float64{5, 5, 5}, "#fff").Render()
	assert.Contains(t, flat, "●")
	assert.NotContains(t, flat, "Legend:")

	single := NewASCIIChart("").WithSize(30, 4).AddSeries("one", []float64{42}, "#fff").Render()
	assert.Contains(t, single, "●")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5M", formatChartValue(1500000))
	assert.Equal(t, "$250K", formatChartValue(250000))
	assert.Equal(t, "$-20K", formatChartValue(-20000))
	assert.Equal(t, "$999", formatChartValue(999))
}
