// Package arbitrage implements the arbitrage bounded context: exchange classification,
// opportunity analysis and profit simulation.
package arbitrage

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/arbitrage-lens/business/arbitrage/di"
	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDI "github.com/fd1az/arbitrage-lens/business/market/di"
	"github.com/fd1az/arbitrage-lens/internal/config"
	"github.com/fd1az/arbitrage-lens/internal/di"
	"github.com/fd1az/arbitrage-lens/internal/logger"
	"github.com/fd1az/arbitrage-lens/internal/monolith"
)

// Module implements the arbitrage bounded context.
// Reporter receives analyses; it and MeterProvider are optional.
type Module struct {
	Reporter      app.Reporter
	MeterProvider metric.MeterProvider
}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbitrageDI.Classifier, func(sr di.ServiceRegistry) *domain.Classifier {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)
		return domain.NewClassifier(cfg.Arbitrage.ExtraDEXKeywords...)
	})

	di.RegisterToken(c, arbitrageDI.Analyzer, func(sr di.ServiceRegistry) *app.Analyzer {
		log := sr.Get(monolith.LoggerService).(logger.LoggerInterface)

		analyzer, err := app.NewAnalyzer(
			marketDI.GetMarketService(sr),
			arbitrageDI.GetClassifier(sr),
			m.Reporter,
			m.MeterProvider,
			log,
		)
		if err != nil {
			panic("failed to create analyzer: " + err.Error())
		}
		return analyzer
	})

	di.RegisterToken(c, arbitrageDI.Simulator, func(sr di.ServiceRegistry) *app.Simulator {
		cfg := sr.Get(monolith.ConfigService).(*config.Config)
		log := sr.Get(monolith.LoggerService).(logger.LoggerInterface)

		sim, err := app.NewSimulator(app.SimulatorDefaults{
			BuyFeePercent:  cfg.Simulator.DefaultBuyFeeString(),
			SellFeePercent: cfg.Simulator.DefaultSellFeeString(),
		}, m.MeterProvider, log)
		if err != nil {
			panic("failed to create simulator: " + err.Error())
		}
		return sim
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	arbitrageDI.GetAnalyzer(mono.Services())
	arbitrageDI.GetSimulator(mono.Services())

	if m.Reporter != nil {
		if err := m.Reporter.Start(ctx); err != nil {
			return err
		}
	}

	mono.Logger().Info(ctx, "arbitrage module started",
		"min_spread_percent", domain.MinSpreadPercent,
		"extra_dex_keywords", len(mono.Config().Arbitrage.ExtraDEXKeywords))
	return nil
}
