package main

import (
	"context"

	arbitrageApp "github.com/fd1az/arbitrage-lens/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/arbitrage-lens/business/arbitrage/di"
	arbitrageDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketApp "github.com/fd1az/arbitrage-lens/business/market/app"
	marketDI "github.com/fd1az/arbitrage-lens/business/market/di"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/business/market/infra/coingecko"
	"github.com/fd1az/arbitrage-lens/internal/config"
	"github.com/fd1az/arbitrage-lens/internal/monolith"
	"github.com/fd1az/arbitrage-lens/pkg/ui"
)

// tuiBackend adapts the application services to ui.Backend.
type tuiBackend struct {
	cfg       *config.Config
	market    *marketApp.MarketService
	analyzer  *arbitrageApp.Analyzer
	simulator *arbitrageApp.Simulator
	client    *coingecko.Client
}

var _ ui.Backend = (*tuiBackend)(nil)

func newTUIBackend(mono *monolith.App) *tuiBackend {
	services := mono.Services()
	return &tuiBackend{
		cfg:       mono.Config(),
		market:    marketDI.GetMarketService(services),
		analyzer:  arbitrageDI.GetAnalyzer(services),
		simulator: arbitrageDI.GetSimulator(services),
		client:    marketDI.GetCoinGeckoClient(services),
	}
}

func (b *tuiBackend) Search(ctx context.Context, query string) ([]marketDomain.Coin, error) {
	return b.market.Search(ctx, query)
}

// RequestAnalysis runs the analyzer; the TUI reporter delivers the outcome.
func (b *tuiBackend) RequestAnalysis(ctx context.Context, coinID string) {
	_, _ = b.analyzer.Analyze(ctx, coinID)
}

func (b *tuiBackend) Chart(ctx context.Context, coinID string) (*marketDomain.MarketChart, error) {
	return b.market.Chart(ctx, coinID, 0)
}

func (b *tuiBackend) Simulate(ctx context.Context, in arbitrageDomain.SimulationInput) (arbitrageDomain.SimulationResult, error) {
	return b.simulator.Simulate(ctx, in)
}

func (b *tuiBackend) SimulationDefaults() (string, string, string) {
	defaults := b.simulator.Defaults()
	return b.cfg.Simulator.DefaultInvestmentString(), defaults.BuyFeePercent, defaults.SellFeePercent
}

func (b *tuiBackend) SourceState() string {
	return b.client.Breaker().State().String()
}
