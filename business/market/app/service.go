package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/internal/apm"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/logger"
)

const maxChartDays = 365

// ServiceConfig holds market service settings.
type ServiceConfig struct {
	SearchLimit int
	VsCurrency  string
	ChartDays   int
}

// MarketService validates requests and shapes provider results.
type MarketService struct {
	provider Provider
	cfg      ServiceConfig
	logger   logger.LoggerInterface
	tracer   apm.Tracer
}

// NewMarketService creates a new MarketService.
func NewMarketService(provider Provider, cfg ServiceConfig, log logger.LoggerInterface) *MarketService {
	if cfg.VsCurrency == "" {
		cfg.VsCurrency = "usd"
	}
	if cfg.ChartDays <= 0 {
		cfg.ChartDays = 7
	}
	return &MarketService{
		provider: provider,
		cfg:      cfg,
		logger:   log,
		tracer:   apm.NewTracer("market.service"),
	}
}

// Search returns the listed coins for query in the provider's relevance order.
func (s *MarketService) Search(ctx context.Context, query string) ([]domain.Coin, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.New(apperror.CodeEmptyQuery)
	}

	ctx, span := s.tracer.Start(ctx, "market.search", attribute.String("query", query))
	defer span.End()

	coins, err := s.provider.SearchCoins(ctx, query)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	listed := make([]domain.Coin, 0, len(coins))
	for _, c := range coins {
		if c.IsListed() {
			listed = append(listed, c)
		}
	}

	if s.cfg.SearchLimit > 0 && len(listed) > s.cfg.SearchLimit {
		listed = listed[:s.cfg.SearchLimit]
	}

	span.SetAttributes(attribute.Int("results", len(listed)))
	s.logger.Debug(ctx, "coin search", "query", query, "raw", len(coins), "listed", len(listed))

	return listed, nil
}

// Tickers returns the quotes for coinID.
func (s *MarketService) Tickers(ctx context.Context, coinID string) ([]domain.TickerQuote, error) {
	coinID = strings.TrimSpace(coinID)
	if coinID == "" {
		return nil, apperror.New(apperror.CodeRequiredField, apperror.WithContext("coin id"))
	}
	return s.provider.GetTickers(ctx, coinID)
}

// Chart returns the price history for coinID. Non-positive days uses the configured default.
func (s *MarketService) Chart(ctx context.Context, coinID string, days int) (*domain.MarketChart, error) {
	coinID = strings.TrimSpace(coinID)
	if coinID == "" {
		return nil, apperror.New(apperror.CodeRequiredField, apperror.WithContext("coin id"))
	}
	if days <= 0 {
		days = s.cfg.ChartDays
	}
	if days > maxChartDays {
		return nil, apperror.New(apperror.CodeInvalidChartRange,
			apperror.WithMessage("Chart range cannot exceed 365 days"))
	}
	return s.provider.GetMarketChart(ctx, coinID, s.cfg.VsCurrency, days)
}
