// Package coingecko implements the market data provider against the CoinGecko v3 REST API.
package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/arbitrage-lens/business/market/app"
	"github.com/fd1az/arbitrage-lens/internal/apm"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/asset"
	"github.com/fd1az/arbitrage-lens/internal/circuitbreaker"
	"github.com/fd1az/arbitrage-lens/internal/httpclient"
	"github.com/fd1az/arbitrage-lens/internal/logger"
	"github.com/fd1az/arbitrage-lens/internal/ratelimit"
)

const (
	tracerName = "coingecko"

	// BaseAPIURL is the public API root.
	BaseAPIURL = "https://api.coingecko.com/api/v3"

	httpTimeout = 10 * time.Second
)

// Config holds configuration for the CoinGecko client.
type Config struct {
	BaseURL           string
	APIKey            string
	APIKeyHeader      string
	Timeout           time.Duration
	RequestsPerMinute int
	BreakerFailures   uint32
	BreakerTimeout    time.Duration
	// Tokens resolves contract-address symbols. Nil uses asset.DefaultRegistry.
	Tokens *asset.Registry
}

// Client is a rate limited, circuit broken CoinGecko client.
type Client struct {
	client  httpclient.Client
	breaker *circuitbreaker.Breaker[*httpclient.Response]
	tokens  *asset.Registry
	logger  logger.LoggerInterface
	tracer  apm.Tracer
}

var _ app.Provider = (*Client)(nil)

// NewClient creates a new CoinGecko client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseAPIURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = httpTimeout
	}

	headers := map[string]string{"Accept": "application/json"}
	if cfg.APIKey != "" && cfg.APIKeyHeader != "" {
		headers[cfg.APIKeyHeader] = cfg.APIKey
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = asset.DefaultRegistry()
	}

	tracer := apm.NewTracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("coingecko"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTracer(tracer.OTel(), true),
		httpclient.WithHeaders(headers),
		httpclient.WithRateLimiter(ratelimit.New(cfg.RequestsPerMinute)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("coingecko")
	if cfg.BreakerFailures > 0 {
		breakerCfg.ConsecutiveFailures = cfg.BreakerFailures
	}
	if cfg.BreakerTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.BreakerTimeout
	}
	breakerCfg.IsSuccessful = countsAsSuccess
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "market data circuit changed state",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		client:  client,
		breaker: circuitbreaker.New[*httpclient.Response](breakerCfg),
		tokens:  tokens,
		logger:  log,
		tracer:  tracer,
	}, nil
}

// Breaker exposes the circuit breaker for health checks.
func (c *Client) Breaker() *circuitbreaker.Breaker[*httpclient.Response] {
	return c.breaker
}

// get performs a GET through the breaker and decodes into result.
func (c *Client) get(ctx context.Context, endpoint, path string, query map[string]string, result any) error {
	resp, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.client.Get(ctx, httpclient.Request{
			Endpoint: endpoint,
			Path:     path,
			Query:    query,
			OnError:  errorHandler,
		}, result)
	})
	if err != nil {
		return mapError(err, endpoint)
	}

	if !resp.Decoded {
		return apperror.New(apperror.CodeMarketDataUnavailable,
			apperror.WithContext(fmt.Sprintf("%s: malformed response", endpoint)))
	}

	return nil
}

// errorHandler maps HTTP failures to market data error codes.
func errorHandler(statusCode int, body []byte) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return apperror.New(apperror.CodeMarketDataRateLimited)
	case statusCode == http.StatusNotFound:
		return apperror.New(apperror.CodeCoinNotFound)
	case statusCode >= 400:
		return apperror.New(apperror.CodeMarketDataUnavailable,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", statusCode, truncate(string(body), 200))))
	}
	return nil
}

// mapError converts transport and breaker errors to AppErrors.
func mapError(err error, endpoint string) error {
	if circuitbreaker.IsOpen(err) {
		return apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err), apperror.WithContext(endpoint))
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if apperror.IsAppError(err) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.New(apperror.CodeMarketDataTimeout, apperror.WithCause(err), apperror.WithContext(endpoint))
	}

	return apperror.New(apperror.CodeMarketDataUnavailable, apperror.WithCause(err), apperror.WithContext(endpoint))
}

// countsAsSuccess keeps lookups of unknown coins and cancelled requests from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	return apperror.GetCode(err) == apperror.CodeCoinNotFound
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
