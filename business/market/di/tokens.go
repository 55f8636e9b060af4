// Package di contains dependency injection tokens for the market data context.
package di

import (
	"github.com/fd1az/arbitrage-lens/business/market/app"
	"github.com/fd1az/arbitrage-lens/business/market/infra/coingecko"
	"github.com/fd1az/arbitrage-lens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("market.MarketService")
	Provider      = di.NewToken[app.Provider]("market.Provider")
)

// Private dependency tokens - internal to market module
var (
	CoinGeckoClient = di.NewToken[*coingecko.Client]("market:coingeckoClient")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetProvider(c di.ServiceRegistry) app.Provider {
	return di.GetToken(c, Provider)
}

func GetCoinGeckoClient(c di.ServiceRegistry) *coingecko.Client {
	return di.GetToken(c, CoinGeckoClient)
}
