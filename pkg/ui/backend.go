package ui

import (
	"context"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

// Backend is what the TUI needs from the application.
type Backend interface {
	Search(ctx context.Context, query string) ([]marketDomain.Coin, error)

	// RequestAnalysis starts an analysis. Its result and any failure arrive
	// as AnalysisMsg / ErrorMsg through the program.
	RequestAnalysis(ctx context.Context, coinID string)

	Chart(ctx context.Context, coinID string) (*marketDomain.MarketChart, error)
	Simulate(ctx context.Context, in arbDomain.SimulationInput) (arbDomain.SimulationResult, error)

	// SimulationDefaults returns the prefilled investment and fee percents.
	SimulationDefaults() (investment, buyFee, sellFee string)

	// SourceState describes the market data circuit ("closed", "open", ...).
	SourceState() string
}
