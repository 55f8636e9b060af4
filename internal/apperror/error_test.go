package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{"coin_not_found", CodeCoinNotFound, http.StatusNotFound},
		{"invalid_simulation_input", CodeInvalidSimulationInput, http.StatusBadRequest},
		{"empty_query", CodeEmptyQuery, http.StatusBadRequest},
		{"rate_limited", CodeMarketDataRateLimited, http.StatusTooManyRequests},
		{"unavailable", CodeMarketDataUnavailable, http.StatusServiceUnavailable},
		{"circuit_open", CodeCircuitOpen, http.StatusServiceUnavailable},
		{"timeout", CodeMarketDataTimeout, http.StatusGatewayTimeout},
		{"internal", CodeInternalError, http.StatusInternalServerError},
		{"unmapped", Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code).StatusCode)
		})
	}
}

func TestNew_MessageFallbacks(t *testing.T) {
	assert.Equal(t, "Coin not found", New(CodeCoinNotFound).Message)
	assert.Equal(t, "SOMETHING_ELSE", New(Code("SOMETHING_ELSE")).Message)
	assert.Equal(t, "Buy price must be greater than zero",
		New(CodeInvalidSimulationInput, WithMessage("Buy price must be greater than zero")).Message)
}

func TestAppError_Error(t *testing.T) {
	err := New(CodeMarketDataTimeout, WithContext("tickers"), WithCause(errors.New("dial tcp: i/o timeout")))
	assert.Equal(t, "MARKET_DATA_TIMEOUT: Market data request timed out [tickers]: dial tcp: i/o timeout", err.Error())
	assert.Equal(t, "EMPTY_QUERY: Search query is empty", New(CodeEmptyQuery).Error())
}

func TestGetCode_ThroughWrapping(t *testing.T) {
	appErr := New(CodeMarketDataRateLimited, WithContext("search"))
	wrapped := fmt.Errorf("fetch tickers: %w", appErr)

	assert.Equal(t, CodeMarketDataRateLimited, GetCode(wrapped))
	assert.Equal(t, CodeUnknownError, GetCode(errors.New("plain")))
	assert.ErrorIs(t, wrapped, New(CodeMarketDataRateLimited), "errors.Is should match on code")
}

func TestRetryableAndDisplay(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		display   string
	}{
		{"rate_limited", New(CodeMarketDataRateLimited), true, "Market data rate limit reached, try again shortly"},
		{"wrapped_circuit_open", fmt.Errorf("x: %w", New(CodeCircuitOpen)), true, "Market data temporarily disabled after repeated failures"},
		{"not_found", New(CodeCoinNotFound), false, "Coin not found"},
		{"plain", errors.New("boom"), false, "boom"},
		{"nil", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.Equal(t, tt.display, Display(tt.err))
		})
	}
}

func TestToResponse_JSON(t *testing.T) {
	appErr := New(CodeMarketDataTimeout, WithContext("q")).WithTraceID("abc")

	raw, err := json.Marshal(appErr.ToResponse())
	require.NoError(t, err)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	e := body["error"]
	assert.Equal(t, "MARKET_DATA_TIMEOUT", e["code"])
	assert.Equal(t, "q", e["context"])
	assert.Equal(t, "abc", e["traceId"])
	assert.Equal(t, true, e["retryable"])
	assert.NotEmpty(t, e["timestamp"])
}

func TestToResponse_OmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(New(CodeEmptyQuery).ToResponse())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "context")
	assert.NotContains(t, string(raw), "traceId")
}

func TestToLog(t *testing.T) {
	kv := Internal(CodeInternalError, "api", errors.New("boom")).ToLog()
	require.Zero(t, len(kv)%2, "key/value pairs")

	fields := map[string]any{}
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	assert.Equal(t, "boom", fields["cause"])
	assert.Equal(t, "api", fields["context"])
	assert.Equal(t, http.StatusInternalServerError, fields["status"])
	assert.Contains(t, fields, "stack")
}
