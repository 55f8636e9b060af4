package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/logger"
)

// SimulatorDefaults are applied to blank fee fields only.
type SimulatorDefaults struct {
	BuyFeePercent  string
	SellFeePercent string
}

// Simulator runs profit simulations.
type Simulator struct {
	defaults SimulatorDefaults
	metrics  *instruments
	logger   logger.LoggerInterface
}

// NewSimulator creates a new Simulator.
func NewSimulator(defaults SimulatorDefaults, mp metric.MeterProvider, log logger.LoggerInterface) (*Simulator, error) {
	inst, err := newInstruments(mp)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		defaults: defaults,
		metrics:  inst,
		logger:   log,
	}, nil
}

// Defaults returns the configured fee defaults.
func (s *Simulator) Defaults() SimulatorDefaults {
	return s.defaults
}

// Simulate fills blank fees from defaults and runs the simulation.
// Investment and prices are never defaulted.
func (s *Simulator) Simulate(ctx context.Context, in domain.SimulationInput) (domain.SimulationResult, error) {
	if strings.TrimSpace(in.BuyFeePercent) == "" {
		in.BuyFeePercent = s.defaults.BuyFeePercent
	}
	if strings.TrimSpace(in.SellFeePercent) == "" {
		in.SellFeePercent = s.defaults.SellFeePercent
	}

	result, err := domain.Simulate(in)
	s.metrics.recordSimulation(ctx, err == nil)
	if err != nil {
		s.logger.Debug(ctx, "simulation rejected", "error", err)
		return domain.SimulationResult{}, err
	}

	s.logger.Debug(ctx, "simulation complete",
		"investment", in.Investment,
		"profit", result.GrossProfit.StringFixed(2),
		"roi", result.ROIPercent.StringFixed(4))

	return result, nil
}
