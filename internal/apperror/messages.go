package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Market data
	CodeMarketDataUnavailable: "Market data is temporarily unavailable",
	CodeMarketDataRateLimited: "Market data rate limit reached, try again shortly",
	CodeMarketDataTimeout:     "Market data request timed out",
	CodeCoinNotFound:          "Coin not found",
	CodeEmptyQuery:            "Search query is empty",
	CodeInvalidChartRange:     "Invalid chart range",

	// Simulation
	CodeInvalidSimulationInput: "Invalid simulation input",

	CodeCircuitOpen: "Market data temporarily disabled after repeated failures",
}
