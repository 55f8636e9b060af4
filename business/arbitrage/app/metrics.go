package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "arbitrage"

// instruments holds the analyzer and simulator metrics.
type instruments struct {
	analyses      metric.Int64Counter
	opportunities metric.Int64Counter
	spread        metric.Float64Histogram
	simulations   metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	analyses, err := meter.Int64Counter("arbitrage_analyses_total",
		metric.WithDescription("Ticker analyses performed"))
	if err != nil {
		return nil, err
	}

	opportunities, err := meter.Int64Counter("arbitrage_opportunities_total",
		metric.WithDescription("Analyses that found an opportunity"))
	if err != nil {
		return nil, err
	}

	spread, err := meter.Float64Histogram("arbitrage_spread_percent",
		metric.WithDescription("Spread of reported opportunities"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50))
	if err != nil {
		return nil, err
	}

	simulations, err := meter.Int64Counter("arbitrage_simulations_total",
		metric.WithDescription("Profit simulations run"))
	if err != nil {
		return nil, err
	}

	return &instruments{
		analyses:      analyses,
		opportunities: opportunities,
		spread:        spread,
		simulations:   simulations,
	}, nil
}

func (i *instruments) recordAnalysis(ctx context.Context, coinID string, found bool, spread float64) {
	attrs := metric.WithAttributes(attribute.String("coin", coinID))
	i.analyses.Add(ctx, 1, attrs)
	if found {
		i.opportunities.Add(ctx, 1, attrs)
		i.spread.Record(ctx, spread, attrs)
	}
}

func (i *instruments) recordSimulation(ctx context.Context, valid bool) {
	i.simulations.Add(ctx, 1, metric.WithAttributes(attribute.Bool("valid", valid)))
}
