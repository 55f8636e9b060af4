// Package ui provides the Bubble Tea TUI for the arbitrage lens.
package ui

import (
	"time"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

// Message types for TUI updates

// SearchResultsMsg carries the coins matching a query.
type SearchResultsMsg struct {
	Query   string
	Coins   []marketDomain.Coin
	Latency time.Duration
}

// AnalysisMsg is sent when a coin's tickers have been analysed.
type AnalysisMsg struct {
	Analysis *arbDomain.Analysis
}

// ChartMsg carries the price history for the selected coin.
type ChartMsg struct {
	Chart *marketDomain.MarketChart
}

// SimulationMsg carries a completed simulation.
type SimulationMsg struct {
	Input  arbDomain.SimulationInput
	Result arbDomain.SimulationResult
}

// SimulationErrorMsg is sent when the simulator rejects its input.
type SimulationErrorMsg struct {
	Error error
}

// ErrorMsg is sent when an error occurs. CoinID is set when the failure
// belongs to a single coin's detail view.
type ErrorMsg struct {
	CoinID string
	Error  error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// WelcomeCompleteMsg signals the welcome screen is done (timeout or keypress).
type WelcomeCompleteMsg struct{}
