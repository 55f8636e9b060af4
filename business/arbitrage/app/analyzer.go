package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/apm"
	"github.com/fd1az/arbitrage-lens/internal/logger"
)

// Analyzer fetches tickers for a coin and computes its arbitrage analysis.
type Analyzer struct {
	source     TickerSource
	classifier *domain.Classifier
	reporter   Reporter
	metrics    *instruments
	logger     logger.LoggerInterface
	tracer     apm.Tracer
}

// NewAnalyzer creates a new Analyzer. reporter may be nil.
func NewAnalyzer(
	source TickerSource,
	classifier *domain.Classifier,
	reporter Reporter,
	mp metric.MeterProvider,
	log logger.LoggerInterface,
) (*Analyzer, error) {
	inst, err := newInstruments(mp)
	if err != nil {
		return nil, err
	}
	if classifier == nil {
		classifier = domain.NewClassifier()
	}
	return &Analyzer{
		source:     source,
		classifier: classifier,
		reporter:   reporter,
		metrics:    inst,
		logger:     log,
		tracer:     apm.NewTracer("arbitrage.analyzer"),
	}, nil
}

// Analyze fetches and analyses the tickers of coinID.
func (a *Analyzer) Analyze(ctx context.Context, coinID string) (*domain.Analysis, error) {
	ctx, span := a.tracer.Start(ctx, "arbitrage.analyze", attribute.String("coin_id", coinID))
	defer span.End()

	quotes, err := a.source.Tickers(ctx, coinID)
	if err != nil {
		span.Fail(err)
		a.logger.Warn(ctx, "ticker fetch failed", "coin", coinID, "error", err)
		if a.reporter != nil {
			a.reporter.ReportAnalysisError(ctx, coinID, err)
		}
		return nil, err
	}

	analysis := domain.Analyze(a.classifier, coinID, quotes)

	spread := 0.0
	if analysis.HasOpportunity() {
		spread = analysis.Opportunity.SpreadPercent
	}
	a.metrics.recordAnalysis(ctx, coinID, analysis.HasOpportunity(), spread)

	span.SetAttributes(
		attribute.Int("quotes", len(quotes)),
		attribute.Int("valid_quotes", analysis.ValidQuotes),
		attribute.Bool("opportunity", analysis.HasOpportunity()),
		attribute.Float64("spread_percent", spread),
	)

	a.logger.Info(ctx, "analysis complete",
		"coin", coinID,
		"quotes", len(quotes),
		"valid", analysis.ValidQuotes,
		"dex", analysis.DEXCount,
		"opportunity", analysis.HasOpportunity(),
		"spread_percent", spread)

	if a.reporter != nil {
		a.reporter.ReportAnalysis(ctx, analysis)
	}

	return analysis, nil
}
