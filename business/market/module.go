// Package market implements the market data bounded context: coin search, tickers and price history.
package market

import (
	"context"

	"github.com/fd1az/arbitrage-lens/business/market/app"
	marketDI "github.com/fd1az/arbitrage-lens/business/market/di"
	"github.com/fd1az/arbitrage-lens/business/market/infra/coingecko"
	"github.com/fd1az/arbitrage-lens/internal/config"
	"github.com/fd1az/arbitrage-lens/internal/di"
	"github.com/fd1az/arbitrage-lens/internal/logger"
	"github.com/fd1az/arbitrage-lens/internal/monolith"
)

// Module implements the market data bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, marketDI.CoinGeckoClient, func(sr di.ServiceRegistry) *coingecko.Client {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)
		log := sr.Get(monolith.LoggerService).(logger.LoggerInterface)

		client, err := coingecko.NewClient(coingecko.Config{
			BaseURL:           cfg.MarketData.BaseURL,
			APIKey:            cfg.MarketData.APIKey,
			APIKeyHeader:      cfg.MarketData.APIKeyHeader,
			Timeout:           cfg.MarketData.Timeout,
			RequestsPerMinute: cfg.MarketData.RequestsPerMinute,
			BreakerFailures:   cfg.MarketData.BreakerFailures,
			BreakerTimeout:    cfg.MarketData.BreakerTimeout,
		}, log)
		if err != nil {
			panic("failed to create coingecko client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, marketDI.Provider, func(sr di.ServiceRegistry) app.Provider {
		return marketDI.GetCoinGeckoClient(sr)
	})

	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)
		log := sr.Get(monolith.LoggerService).(logger.LoggerInterface)

		return app.NewMarketService(marketDI.GetProvider(sr), app.ServiceConfig{
			SearchLimit: cfg.MarketData.SearchLimit,
			VsCurrency:  cfg.MarketData.VsCurrency,
			ChartDays:   cfg.MarketData.ChartDays,
		}, log)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()

	// resolve eagerly so a bad client config fails at startup
	marketDI.GetMarketService(mono.Services())

	mono.Logger().Info(ctx, "market module started",
		"base_url", cfg.MarketData.BaseURL,
		"requests_per_minute", cfg.MarketData.RequestsPerMinute,
		"api_key_set", cfg.MarketData.APIKey != "")
	return nil
}
