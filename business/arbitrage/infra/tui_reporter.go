package infra

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/pkg/ui"
)

// TUIReporter implements Reporter for the Bubble Tea TUI.
type TUIReporter struct {
	send func(tea.Msg)
}

// NewTUIReporter creates a TUIReporter. A nil send uses ui.Send.
func NewTUIReporter(send func(tea.Msg)) *TUIReporter {
	if send == nil {
		send = ui.Send
	}
	return &TUIReporter{send: send}
}

// Start is a no-op; the program is started by the caller.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

// ReportAnalysis sends the analysis to the TUI.
func (r *TUIReporter) ReportAnalysis(ctx context.Context, a *domain.Analysis) {
	r.send(ui.AnalysisMsg{Analysis: a})
}

// ReportSimulation sends the simulation result to the TUI.
func (r *TUIReporter) ReportSimulation(ctx context.Context, in domain.SimulationInput, res domain.SimulationResult) {
	r.send(ui.SimulationMsg{Input: in, Result: res})
}

// ReportError sends the error to the TUI.
func (r *TUIReporter) ReportError(ctx context.Context, err error) {
	r.send(ui.ErrorMsg{Error: err})
}

// ReportAnalysisError sends the error tagged with its coin so the TUI can drop
// failures of an analysis it has moved away from.
func (r *TUIReporter) ReportAnalysisError(ctx context.Context, coinID string, err error) {
	r.send(ui.ErrorMsg{CoinID: coinID, Error: err})
}

// Stop is a no-op.
func (r *TUIReporter) Stop() error {
	return nil
}
