package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LegView is one side of an opportunity.
type LegView struct {
	Exchange string
	Pair     string
	Price    float64
}

// OpportunityView is the best opportunity for the selected coin.
type OpportunityView struct {
	Buy           LegView
	Sell          LegView
	SpreadPercent float64
}

// OpportunityComponent renders the opportunity panel.
type OpportunityComponent struct {
	opp          *OpportunityView
	minSpread    float64
	validQuotes  int
	analyzedOnce bool
}

// NewOpportunityComponent creates a new opportunity component.
func NewOpportunityComponent(minSpread float64) *OpportunityComponent {
	return &OpportunityComponent{minSpread: minSpread}
}

// Set stores the latest opportunity; nil means none was found.
func (o *OpportunityComponent) Set(opp *OpportunityView, validQuotes int) {
	o.opp = opp
	o.validQuotes = validQuotes
	o.analyzedOnce = true
}

// Clear resets the panel.
func (o *OpportunityComponent) Clear() {
	o.opp = nil
	o.validQuotes = 0
	o.analyzedOnce = false
}

// Opportunity returns the current opportunity, if any.
func (o *OpportunityComponent) Opportunity() *OpportunityView {
	return o.opp
}

// View renders the opportunity component.
func (o *OpportunityComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	buyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	sellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	spreadStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#10B981")).Bold(true)

	var b strings.Builder
	b.WriteString(headerStyle.Render("BEST OPPORTUNITY"))
	b.WriteString("\n\n")

	if !o.analyzedOnce {
		b.WriteString(dimStyle.Render("  Waiting for tickers..."))
		return b.String()
	}

	if o.opp == nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  No spread of at least %.1f%% across %d valid quotes", o.minSpread, o.validQuotes)))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s %s %s @ %s\n",
		buyStyle.Render("BUY "),
		o.opp.Buy.Exchange,
		dimStyle.Render("("+o.opp.Buy.Pair+")"),
		buyStyle.Render(FormatPrice(&o.opp.Buy.Price))))
	b.WriteString(fmt.Sprintf("  %s %s %s @ %s\n",
		sellStyle.Render("SELL"),
		o.opp.Sell.Exchange,
		dimStyle.Render("("+o.opp.Sell.Pair+")"),
		sellStyle.Render(FormatPrice(&o.opp.Sell.Price))))
	b.WriteString("\n")
	b.WriteString("  Spread: ")
	b.WriteString(spreadStyle.Render(fmt.Sprintf(" %.2f%% ", o.opp.SpreadPercent)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Before fees, transfers and slippage"))

	return b.String()
}
