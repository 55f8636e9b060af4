package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/health"
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

type MockMarket struct {
	mock.Mock
}

func (m *MockMarket) Search(ctx context.Context, query string) ([]marketDomain.Coin, error) {
	args := m.Called(ctx, query)
	coins, _ := args.Get(0).([]marketDomain.Coin)
	return coins, args.Error(1)
}

func (m *MockMarket) Tickers(ctx context.Context, coinID string) ([]marketDomain.TickerQuote, error) {
	args := m.Called(ctx, coinID)
	quotes, _ := args.Get(0).([]marketDomain.TickerQuote)
	return quotes, args.Error(1)
}

func (m *MockMarket) Chart(ctx context.Context, coinID string, days int) (*marketDomain.MarketChart, error) {
	args := m.Called(ctx, coinID, days)
	chart, _ := args.Get(0).(*marketDomain.MarketChart)
	return chart, args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, coinID string) (*arbDomain.Analysis, error) {
	args := m.Called(ctx, coinID)
	a, _ := args.Get(0).(*arbDomain.Analysis)
	return a, args.Error(1)
}

type domainSimulator struct{}

func (domainSimulator) Simulate(ctx context.Context, in arbDomain.SimulationInput) (arbDomain.SimulationResult, error) {
	return arbDomain.Simulate(in)
}

func newTestServer(market *MockMarket, analyzer *MockAnalyzer) *FiberServer {
	return New(Config{}, Services{
		Market:    market,
		Analyzer:  analyzer,
		Simulator: domainSimulator{},
	}, &mockLogger{})
}

func doRequest(t *testing.T, s *FiberServer, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := s.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), "body: %s", body)
	return resp.StatusCode, decoded
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func rank(n int) *int { return &n }

func TestSearchHandler(t *testing.T) {
	market := new(MockMarket)
	market.On("Search", mock.Anything, "btc").
		Return([]marketDomain.Coin{{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", MarketCapRank: rank(1)}}, nil).Once()
	market.On("Search", mock.Anything, "").
		Return(nil, apperror.New(apperror.CodeEmptyQuery)).Once()

	s := newTestServer(market, new(MockAnalyzer))

	t.Run("results", func(t *testing.T) {
		status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/search?q=btc", nil))

		assert.Equal(t, http.StatusOK, status)
		coins, ok := body["coins"].([]any)
		require.True(t, ok)
		assert.Len(t, coins, 1)
	})

	t.Run("empty_query", func(t *testing.T) {
		status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/search", nil))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "EMPTY_QUERY", errorCode(body))
	})

	market.AssertExpectations(t)
}

func TestTickersHandler_MarketErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantRetry  bool
	}{
		{"not_found", apperror.New(apperror.CodeCoinNotFound), http.StatusNotFound, "COIN_NOT_FOUND", false},
		{"rate_limited", apperror.New(apperror.CodeMarketDataRateLimited), http.StatusTooManyRequests, "MARKET_DATA_RATE_LIMITED", true},
		{"circuit_open", apperror.New(apperror.CodeCircuitOpen), http.StatusServiceUnavailable, "CIRCUIT_OPEN", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := new(MockMarket)
			market.On("Tickers", mock.Anything, "nope").Return(nil, tt.err)
			s := newTestServer(market, new(MockAnalyzer))

			status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/coins/nope/tickers", nil))

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, errorCode(body))
			e, _ := body["error"].(map[string]any)
			assert.Equal(t, tt.wantRetry, e["retryable"])
		})
	}
}

func TestArbitrageHandler(t *testing.T) {
	quotes := []marketDomain.TickerQuote{
		{ExchangeName: "Binance", BaseSymbol: "BTC", TargetSymbol: "USDT", PriceUSD: marketDomain.PriceOf(60000)},
		{ExchangeName: "Kraken", BaseSymbol: "BTC", TargetSymbol: "USD", PriceUSD: marketDomain.PriceOf(60200)},
	}
	analysis := arbDomain.Analyze(arbDomain.NewClassifier(), "bitcoin", quotes)

	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, "bitcoin").Return(analysis, nil).Once()
	s := newTestServer(new(MockMarket), analyzer)

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/coins/bitcoin/arbitrage", nil))

	assert.Equal(t, http.StatusOK, status)
	opp, ok := body["opportunity"].(map[string]any)
	require.True(t, ok, "opportunity missing: %v", body)
	assert.Equal(t, 0.33, opp["spread_percent"])
	buy := opp["buy"].(map[string]any)
	assert.Equal(t, "Binance", buy["exchange_name"])
	assert.Equal(t, "BTC/USDT", buy["pair"])
	analyzer.AssertExpectations(t)
}

func TestChartHandler(t *testing.T) {
	market := new(MockMarket)
	market.On("Chart", mock.Anything, "bitcoin", 30).
		Return(&marketDomain.MarketChart{CoinID: "bitcoin", VsCurrency: "usd", Days: 30}, nil).Once()
	s := newTestServer(market, new(MockAnalyzer))

	t.Run("days_passed_through", func(t *testing.T) {
		status, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/coins/bitcoin/chart?days=30", nil))
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("bad_days", func(t *testing.T) {
		status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/coins/bitcoin/chart?days=week", nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_CHART_RANGE", errorCode(body))
	})

	market.AssertExpectations(t)
}

func TestSimulateHandler(t *testing.T) {
	s := newTestServer(new(MockMarket), new(MockAnalyzer))

	post := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("profitable_trade", func(t *testing.T) {
		status, body := doRequest(t, s, post(`{"investment":"1000","buy_price":"100","sell_price":"102","buy_fee_percent":"0.1","sell_fee_percent":"0.1"}`))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["profitable"])
		result := body["result"].(map[string]any)
		assert.Equal(t, "10", result["units_acquired"])
	})

	t.Run("invalid_price", func(t *testing.T) {
		status, body := doRequest(t, s, post(`{"investment":"1000","buy_price":"0","sell_price":"102","buy_fee_percent":"0","sell_fee_percent":"0"}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_SIMULATION_INPUT", errorCode(body))
	})

	t.Run("malformed_body", func(t *testing.T) {
		status, body := doRequest(t, s, post(`{not json`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_INPUT", errorCode(body))
	})
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(new(MockMarket), new(MockAnalyzer))

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestHealthHandler(t *testing.T) {
	checker := health.NewChecker("test")
	checker.Register("market_data", func(ctx context.Context) (bool, string) { return false, "circuit open" })

	s := New(Config{}, Services{
		Market:    new(MockMarket),
		Analyzer:  new(MockAnalyzer),
		Simulator: domainSimulator{},
		Health:    checker,
	}, &mockLogger{})

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
}

func TestRetryAfterHeader(t *testing.T) {
	market := new(MockMarket)
	market.On("Tickers", mock.Anything, "bitcoin").Return(nil, apperror.New(apperror.CodeMarketDataRateLimited))
	s := newTestServer(market, new(MockAnalyzer))

	resp, err := s.Test(httptest.NewRequest(http.MethodGet, "/api/coins/bitcoin/tickers", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, retryAfterSeconds, resp.Header.Get("Retry-After"))
}
