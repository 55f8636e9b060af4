// Package app contains application services and port definitions for the market data context.
package app

import (
	"context"

	"github.com/fd1az/arbitrage-lens/business/market/domain"
)

// Provider is a remote market-data source.
type Provider interface {
	// SearchCoins returns coins matching a name or symbol.
	SearchCoins(ctx context.Context, query string) ([]domain.Coin, error)

	// GetTickers returns the per-exchange quotes for one coin.
	GetTickers(ctx context.Context, coinID string) ([]domain.TickerQuote, error)

	// GetMarketChart returns the historical price series for one coin.
	GetMarketChart(ctx context.Context, coinID, vsCurrency string, days int) (*domain.MarketChart, error)
}
