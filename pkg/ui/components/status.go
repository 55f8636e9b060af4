package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SourceStatus represents a market data source's health.
type SourceStatus struct {
	Name       string
	State      string // circuit breaker state: "closed", "half-open", "open"
	Latency    time.Duration
	LastUpdate time.Time
}

// StatusComponent renders data source status.
type StatusComponent struct {
	sources []SourceStatus
}

// NewStatusComponent creates a new status component.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{
		sources: make([]SourceStatus, 0),
	}
}

// Update updates a source's status, keeping the last known latency when none is given.
func (s *StatusComponent) Update(status SourceStatus) {
	for i, src := range s.sources {
		if src.Name == status.Name {
			if status.Latency == 0 {
				status.Latency = src.Latency
			}
			s.sources[i] = status
			return
		}
	}
	s.sources = append(s.sources, status)
}

// View renders the status component.
func (s *StatusComponent) View() string {
	if len(s.sources) == 0 {
		return "No data sources"
	}

	var result string
	for i, src := range s.sources {
		var icon string
		var style lipgloss.Style
		switch src.State {
		case "closed", "":
			icon = "●"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
		case "half-open":
			icon = "◐"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
		default:
			icon = "○"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
		}

		line := style.Render(icon + " " + src.Name)
		if src.State == "open" {
			line += style.Render(" (circuit open)")
		} else if src.Latency > 0 {
			line += fmt.Sprintf(" (%dms)", src.Latency.Milliseconds())
		}
		if i > 0 {
			result += "  │  "
		}
		result += line
	}

	return result
}
