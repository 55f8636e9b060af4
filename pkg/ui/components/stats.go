package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Stats holds session statistics for display.
type Stats struct {
	Searches      int64
	Analyses      int64
	Opportunities int64
	Simulations   int64
	Errors        int64
}

// StatsComponent renders statistics.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// Stats returns the current statistics.
func (s *StatsComponent) Stats() Stats {
	return s.stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	hitRate := float64(0)
	if s.stats.Analyses > 0 {
		hitRate = float64(s.stats.Opportunities) / float64(s.stats.Analyses) * 100
	}

	errorsDisplay := valueStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	if s.stats.Errors > 0 {
		errorsDisplay = errorStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	}

	return style.Render("Searches ") + valueStyle.Render(fmt.Sprintf("%d", s.stats.Searches)) +
		style.Render("  │  Analyses ") + valueStyle.Render(fmt.Sprintf("%d", s.stats.Analyses)) +
		style.Render("  │  Opportunities ") + valueStyle.Render(fmt.Sprintf("%d", s.stats.Opportunities)) +
		style.Render(fmt.Sprintf(" (%.0f%%)", hitRate)) +
		style.Render("  │  Simulations ") + valueStyle.Render(fmt.Sprintf("%d", s.stats.Simulations)) +
		style.Render("  │  Errors ") + errorsDisplay
}
