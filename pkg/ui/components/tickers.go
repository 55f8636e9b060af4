// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TickerRow represents a row in the tickers table.
type TickerRow struct {
	Exchange string
	IsDEX    bool
	Pair     string
	Price    *float64
	Volume   float64
	IsBuy    bool
	IsSell   bool
	IsStale  bool
}

// TickersComponent renders a coin's tickers with the opportunity legs highlighted.
type TickersComponent struct {
	rows       []TickerRow
	offset     int
	maxVisible int
}

// NewTickersComponent creates a new tickers component.
func NewTickersComponent(maxVisible int) *TickersComponent {
	if maxVisible <= 0 {
		maxVisible = 15
	}
	return &TickersComponent{
		rows:       make([]TickerRow, 0),
		maxVisible: maxVisible,
	}
}

// Update replaces the rows and resets scrolling.
func (t *TickersComponent) Update(rows []TickerRow) {
	t.rows = rows
	t.offset = 0
}

// Len returns the number of rows.
func (t *TickersComponent) Len() int {
	return len(t.rows)
}

// SetMaxVisible sets how many rows fit on screen.
func (t *TickersComponent) SetMaxVisible(n int) {
	if n > 0 {
		t.maxVisible = n
	}
	t.clamp()
}

// ScrollUp scrolls one row up.
func (t *TickersComponent) ScrollUp() {
	t.offset--
	t.clamp()
}

// ScrollDown scrolls one row down.
func (t *TickersComponent) ScrollDown() {
	t.offset++
	t.clamp()
}

func (t *TickersComponent) clamp() {
	maxOffset := len(t.rows) - t.maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// View renders the tickers component.
func (t *TickersComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	buyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	sellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dexBadge := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED"))
	cexBadge := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#374151"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("TICKERS (%d)", len(t.rows))))
	b.WriteString("\n\n")

	if len(t.rows) == 0 {
		b.WriteString(dimStyle.Render("  No tickers for this coin"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("     %-5s %-28s %-16s %14s %14s\n", "Type", "Exchange", "Pair", "Price", "Volume"))
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 82)))
	b.WriteString("\n")

	end := t.offset + t.maxVisible
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for _, row := range t.rows[t.offset:end] {
		marker := "  "
		lineStyle := lipgloss.NewStyle()
		switch {
		case row.IsBuy:
			marker = "B "
			lineStyle = buyStyle
		case row.IsSell:
			marker = "S "
			lineStyle = sellStyle
		case row.Price == nil || row.IsStale:
			lineStyle = dimStyle
		}

		badge := cexBadge.Render(" CEX ")
		if row.IsDEX {
			badge = dexBadge.Render(" DEX ")
		}

		line := fmt.Sprintf("%s %s %s %s %14s %14s",
			lineStyle.Render(marker),
			badge,
			lineStyle.Render(pad(row.Exchange, 28)),
			lineStyle.Render(pad(row.Pair, 16)),
			lineStyle.Render(FormatPrice(row.Price)),
			dimStyle.Render(FormatVolume(row.Volume)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(t.rows) > t.maxVisible {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  rows %d-%d of %d (↑↓ scroll)", t.offset+1, end, len(t.rows))))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatPrice renders a USD price, or n/a when absent.
func FormatPrice(p *float64) string {
	if p == nil {
		return "n/a"
	}
	v := *p
	switch {
	case v >= 1:
		return "$" + strconv.FormatFloat(v, 'f', 2, 64)
	case v >= 0.0001:
		return "$" + strconv.FormatFloat(v, 'f', 6, 64)
	default:
		return "$" + strconv.FormatFloat(v, 'g', 4, 64)
	}
}

// FormatVolume renders a USD volume with K/M/B suffixes.
func FormatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	case v > 0:
		return fmt.Sprintf("$%.2f", v)
	default:
		return "-"
	}
}

// pad truncates or right-pads s to width display cells.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
