// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"context"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
)

// TickerSource supplies the quotes to analyse.
type TickerSource interface {
	Tickers(ctx context.Context, coinID string) ([]marketDomain.TickerQuote, error)
}

// Reporter defines the interface for presenting analysis results.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// ReportAnalysis presents a completed analysis.
	ReportAnalysis(ctx context.Context, analysis *domain.Analysis)

	// ReportSimulation presents a simulated trade.
	ReportSimulation(ctx context.Context, in domain.SimulationInput, result domain.SimulationResult)

	// ReportError presents a failure.
	ReportError(ctx context.Context, err error)

	// ReportAnalysisError presents a failed analysis of coinID.
	ReportAnalysisError(ctx context.Context, coinID string, err error)

	// Stop gracefully shuts down the reporter.
	Stop() error
}
