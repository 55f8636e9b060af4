package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Buy legs and gains share the green, sell legs the amber.
var (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorGain    = lipgloss.Color("#10B981")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorAccent  = lipgloss.Color("#F59E0B")
	ColorFaint   = lipgloss.Color("#9CA3AF")
	ColorBorder  = lipgloss.Color("#374151")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Layout
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPrimary).
			Padding(0, 2)
)

// Values
var (
	PositiveValue = lipgloss.NewStyle().Foreground(ColorGain)
	NegativeValue = lipgloss.NewStyle().Foreground(ColorDanger)
	MutedValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	FocusedLabelStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// Error panel
var (
	ErrorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	ErrorLineStyle   = lipgloss.NewStyle().Foreground(ColorDanger)
	ErrorHintStyle   = lipgloss.NewStyle().Foreground(ColorFaint)
)

// Welcome screen
var (
	LogoStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TaglineStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LoadingStyle = lipgloss.NewStyle().Foreground(ColorGain)
)
