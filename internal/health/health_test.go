package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/arbitrage-lens/internal/logger"
)

type fakeBreaker struct{ state gobreaker.State }

func (f fakeBreaker) State() gobreaker.State { return f.state }

func TestBreakerCheck(t *testing.T) {
	tests := []struct {
		name    string
		state   gobreaker.State
		healthy bool
	}{
		{"closed", gobreaker.StateClosed, true},
		{"half_open", gobreaker.StateHalfOpen, true},
		{"open", gobreaker.StateOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthy, msg := BreakerCheck(fakeBreaker{tt.state})(context.Background())
			assert.Equal(t, tt.healthy, healthy, msg)
		})
	}
}

func TestChecker_Run(t *testing.T) {
	checker := NewChecker("v1")
	checker.Register("market_data", BreakerCheck(fakeBreaker{gobreaker.StateClosed}))
	checker.Register("slow", func(ctx context.Context) (bool, string) {
		<-ctx.Done()
		return false, ctx.Err().Error()
	})
	checker.timeout = 10 * time.Millisecond

	report := checker.Run(context.Background())

	assert.False(t, report.Healthy())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "v1", report.Version)
	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks["market_data"].Healthy)
	assert.Equal(t, "context deadline exceeded", report.Checks["slow"].Message)
}

func TestChecker_NoChecksIsHealthy(t *testing.T) {
	assert.True(t, NewChecker("").Run(context.Background()).Healthy())
}

func TestServer_HealthEndpoint(t *testing.T) {
	checker := NewChecker("test")
	checker.Register("market_data", BreakerCheck(fakeBreaker{gobreaker.StateOpen}))
	srv := NewServer(0, checker, logger.Discard())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var report Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "degraded", report.Status)
	assert.False(t, report.Checks["market_data"].Healthy)
	assert.Equal(t, "circuit open", report.Checks["market_data"].Message)
}

func TestServer_ReadyAndLive(t *testing.T) {
	checker := NewChecker("test")
	checker.Register("market_data", BreakerCheck(fakeBreaker{gobreaker.StateClosed}))
	srv := NewServer(0, checker, logger.Discard())

	for _, path := range []string{"/ready", "/live"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	checker.Register("market_data", BreakerCheck(fakeBreaker{gobreaker.StateOpen}))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
