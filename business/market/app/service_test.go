package app

import (
	"context"
	"testing"

	"github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/logger"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

type stubProvider struct {
	coins     []domain.Coin
	tickers   []domain.TickerQuote
	chartArgs struct {
		id, vs string
		days   int
	}
	err error
}

func (s *stubProvider) SearchCoins(ctx context.Context, query string) ([]domain.Coin, error) {
	return s.coins, s.err
}

func (s *stubProvider) GetTickers(ctx context.Context, coinID string) ([]domain.TickerQuote, error) {
	return s.tickers, s.err
}

func (s *stubProvider) GetMarketChart(ctx context.Context, coinID, vs string, days int) (*domain.MarketChart, error) {
	s.chartArgs.id, s.chartArgs.vs, s.chartArgs.days = coinID, vs, days
	return &domain.MarketChart{CoinID: coinID, VsCurrency: vs, Days: days}, s.err
}

func rank(n int) *int { return &n }

func TestMarketService_Search(t *testing.T) {
	provider := &stubProvider{coins: []domain.Coin{
		{ID: "wrapped-bitcoin", Name: "Wrapped Bitcoin", MarketCapRank: rank(15)},
		{ID: "bitcoin-scam", Name: "Bitcoin Scam"},
		{ID: "bitcoin", Name: "Bitcoin", MarketCapRank: rank(1)},
		{ID: "", Name: "Broken", MarketCapRank: rank(2)},
		{ID: "bitcoin-cash", Name: "Bitcoin Cash", MarketCapRank: rank(20)},
	}}
	svc := NewMarketService(provider, ServiceConfig{SearchLimit: 2}, &mockLogger{})

	coins, err := svc.Search(context.Background(), "  bitcoin ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(coins) != 2 {
		t.Fatalf("len = %d, want 2", len(coins))
	}
	// relevance order is kept, not re-ranked
	if coins[0].ID != "wrapped-bitcoin" || coins[1].ID != "bitcoin" {
		t.Errorf("got %s, %s, want wrapped-bitcoin, bitcoin", coins[0].ID, coins[1].ID)
	}
}

func TestMarketService_SearchEmptyQuery(t *testing.T) {
	svc := NewMarketService(&stubProvider{}, ServiceConfig{}, &mockLogger{})

	_, err := svc.Search(context.Background(), "   ")
	if apperror.GetCode(err) != apperror.CodeEmptyQuery {
		t.Errorf("err = %v, want EMPTY_QUERY", err)
	}
}

func TestMarketService_SearchPropagatesProviderError(t *testing.T) {
	svc := NewMarketService(&stubProvider{err: apperror.New(apperror.CodeMarketDataRateLimited)}, ServiceConfig{}, &mockLogger{})

	_, err := svc.Search(context.Background(), "eth")
	if apperror.GetCode(err) != apperror.CodeMarketDataRateLimited {
		t.Errorf("err = %v", err)
	}
}

func TestMarketService_Chart(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantDays int
		wantCode apperror.Code
	}{
		{"default_days", 0, 7, ""},
		{"explicit_days", 30, 30, ""},
		{"too_long", 400, 0, apperror.CodeInvalidChartRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{}
			svc := NewMarketService(provider, ServiceConfig{}, &mockLogger{})

			chart, err := svc.Chart(context.Background(), "bitcoin", tt.days)
			if tt.wantCode != "" {
				if apperror.GetCode(err) != tt.wantCode {
					t.Errorf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Chart: %v", err)
			}
			if chart.Days != tt.wantDays || provider.chartArgs.vs != "usd" {
				t.Errorf("days = %d vs = %q", chart.Days, provider.chartArgs.vs)
			}
		})
	}
}

func TestMarketService_TickersRequiresID(t *testing.T) {
	svc := NewMarketService(&stubProvider{}, ServiceConfig{}, &mockLogger{})

	if _, err := svc.Tickers(context.Background(), ""); apperror.GetCode(err) != apperror.CodeRequiredField {
		t.Errorf("err = %v", err)
	}
}
