package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rothgo/internal/tui/tuistyles"
)

const yAxisWidth = 9

var seriesGlyphs = []rune{'●', '■', '▲', '♦'}

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more balance trajectories on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// AddDecimalSeries adds a series of currency amounts.
func (c *ASCIIChart) AddDecimalSeries(name string, values []decimal.Decimal, color lipgloss.Color) *ASCIIChart {
	points := make([]float64, len(values))
	for i, v := range values {
		points[i] = v.InexactFloat64()
	}
	return c.AddSeries(name, points, color)
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	plotWidth := max(c.Width-yAxisWidth-3, 2)
	height := max(c.Height, 2)
	grid := c.plot(lo, hi, plotWidth, height)

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for row, cells := range grid {
		v := hi - (hi-lo)*float64(row)/float64(height-1)
		sb.WriteString(axis.Render(fmt.Sprintf("%*s", yAxisWidth, formatChartValue(v))))
		sb.WriteString(" │ ")
		for _, cell := range cells {
			if cell < 0 {
				sb.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.Series[cell].Color)
			sb.WriteString(style.Render(string(seriesGlyphs[cell%len(seriesGlyphs)])))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", plotWidth+1) + "\n")
	if len(c.Labels) > 0 {
		sb.WriteString(axis.Render(strings.Repeat(" ", yAxisWidth+3) + c.xAxis(plotWidth)))
		sb.WriteString("\n")
	}

	if c.ShowLegend && len(c.Series) > 1 {
		sb.WriteString("\n")
		sb.WriteString(c.renderLegend())
	}
	return sb.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds returns the padded value range across all series. A flat range is
// widened so every point still maps to a row.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// plot returns a height×width grid of series indexes, -1 for empty cells.
// Later series draw over earlier ones.
func (c *ASCIIChart) plot(lo, hi float64, width, height int) [][]int {
	grid := make([][]int, height)
	for i := range grid {
		grid[i] = make([]int, width)
		for j := range grid[i] {
			grid[i][j] = -1
		}
	}

	toRow := func(v float64) int {
		return height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
	}
	toCol := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
	}

	for idx, s := range c.Series {
		n := len(s.Points)
		for i := range s.Points {
			x, y := toCol(i, n), toRow(s.Points[i])
			if i == 0 {
				grid[y][x] = idx
				continue
			}
			drawLine(grid, toCol(i-1, n), toRow(s.Points[i-1]), x, y, idx)
		}
	}
	return grid
}

// drawLine marks cells between two points using Bresenham's algorithm
func drawLine(grid [][]int, x0, y0, x1, y1, value int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = value
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// xAxis places the first, middle and last labels under their columns.
func (c *ASCIIChart) xAxis(width int) string {
	line := []rune(strings.Repeat(" ", width+8))
	n := len(c.Labels)
	for _, i := range []int{0, n / 2, n - 1} {
		col := 0
		if n > 1 {
			col = int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
		}
		label := []rune(c.Labels[i])
		start := min(col, len(line)-len(label))
		if start < 0 {
			continue
		}
		copy(line[start:], label)
	}
	return strings.TrimRight(string(line), " ")
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		glyph := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesGlyphs[i%len(seriesGlyphs)]))
		items = append(items, glyph+" "+s.Name)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue formats a value for display on Y-axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
