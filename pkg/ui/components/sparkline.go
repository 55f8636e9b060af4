package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single line of block characters, sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sample(values, width)
	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range sampled {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// sample picks width evenly spaced values, keeping the last one.
func sample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}

// ChartView is the price history summary for display.
type ChartView struct {
	Values        []float64
	Days          int
	Currency      string
	Min           float64
	Max           float64
	Last          float64
	ChangePercent float64
}

// ChartComponent renders a price sparkline with its range.
type ChartComponent struct {
	chart *ChartView
	width int
}

// NewChartComponent creates a new chart component.
func NewChartComponent(width int) *ChartComponent {
	return &ChartComponent{width: width}
}

// Set stores the chart to render.
func (c *ChartComponent) Set(chart *ChartView) {
	c.chart = chart
}

// SetWidth sets the sparkline width.
func (c *ChartComponent) SetWidth(width int) {
	if width > 10 {
		c.width = width
	}
}

// View renders the chart component.
func (c *ChartComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	upStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	downStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	if c.chart == nil {
		return headerStyle.Render("PRICE") + "\n\n" + dimStyle.Render("  Loading chart...")
	}
	if len(c.chart.Values) == 0 {
		return headerStyle.Render("PRICE") + "\n\n" + dimStyle.Render("  No price history")
	}

	lineStyle := upStyle
	if c.chart.ChangePercent < 0 {
		lineStyle = downStyle
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("PRICE (%dd, %s)", c.chart.Days, strings.ToUpper(c.chart.Currency))))
	b.WriteString("\n\n  ")
	b.WriteString(lineStyle.Render(Sparkline(c.chart.Values, c.width)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Last %s  %s  %s\n",
		FormatPrice(&c.chart.Last),
		lineStyle.Render(fmt.Sprintf("%+.2f%%", c.chart.ChangePercent)),
		dimStyle.Render(fmt.Sprintf("low %s  high %s", FormatPrice(&c.chart.Min), FormatPrice(&c.chart.Max)))))

	return b.String()
}
