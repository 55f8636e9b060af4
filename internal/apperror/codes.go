package apperror

import "net/http"

// Code is a stable, machine-readable error identifier.
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Market data errors
const (
	CodeMarketDataUnavailable Code = "MARKET_DATA_UNAVAILABLE"
	CodeMarketDataRateLimited Code = "MARKET_DATA_RATE_LIMITED"
	CodeMarketDataTimeout     Code = "MARKET_DATA_TIMEOUT"
	CodeCoinNotFound          Code = "COIN_NOT_FOUND"
	CodeEmptyQuery            Code = "EMPTY_QUERY"
	CodeInvalidChartRange     Code = "INVALID_CHART_RANGE"
	CodeCircuitOpen           Code = "CIRCUIT_OPEN"
)

// Simulation errors
const (
	CodeInvalidSimulationInput Code = "INVALID_SIMULATION_INPUT"
)

var statusCodes = map[Code]int{
	CodeRequiredField:          http.StatusBadRequest,
	CodeInvalidInput:           http.StatusBadRequest,
	CodeValidationError:        http.StatusBadRequest,
	CodeEmptyQuery:             http.StatusBadRequest,
	CodeInvalidChartRange:      http.StatusBadRequest,
	CodeInvalidSimulationInput: http.StatusBadRequest,

	CodeNotFound:     http.StatusNotFound,
	CodeCoinNotFound: http.StatusNotFound,

	CodeMarketDataRateLimited: http.StatusTooManyRequests,
	CodeMarketDataTimeout:     http.StatusGatewayTimeout,
	CodeMarketDataUnavailable: http.StatusServiceUnavailable,
	CodeCircuitOpen:           http.StatusServiceUnavailable,
}

// upstream conditions that clear on their own
var retryable = map[Code]bool{
	CodeMarketDataRateLimited: true,
	CodeMarketDataTimeout:     true,
	CodeMarketDataUnavailable: true,
	CodeCircuitOpen:           true,
}

func statusFor(code Code) int {
	if s, ok := statusCodes[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
