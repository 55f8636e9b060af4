// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Arbitrage  ArbitrageConfig  `mapstructure:"arbitrage"`
	Simulator  SimulatorConfig  `mapstructure:"simulator"`
	Server     ServerConfig     `mapstructure:"server"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Health     HealthConfig     `mapstructure:"health"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"` // TUI mode only; empty discards logs
}

// MarketDataConfig holds the CoinGecko-compatible API settings.
type MarketDataConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	APIKeyHeader      string        `mapstructure:"api_key_header"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	VsCurrency        string        `mapstructure:"vs_currency"`
	ChartDays         int           `mapstructure:"chart_days"`
	SearchLimit       int           `mapstructure:"search_limit"`
	BreakerFailures   uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout    time.Duration `mapstructure:"breaker_timeout"`
}

// ArbitrageConfig holds exchange classification settings.
type ArbitrageConfig struct {
	ExtraDEXKeywords []string `mapstructure:"extra_dex_keywords"`
}

// SimulatorConfig holds the values used to prefill the profit simulator.
type SimulatorConfig struct {
	DefaultInvestment float64 `mapstructure:"default_investment"`
	DefaultBuyFee     float64 `mapstructure:"default_buy_fee"`
	DefaultSellFee    float64 `mapstructure:"default_sell_fee"`
}

// DefaultInvestmentString formats the default investment for form input.
func (c *SimulatorConfig) DefaultInvestmentString() string {
	return decimal.NewFromFloat(c.DefaultInvestment).String()
}

// DefaultBuyFeeString formats the default buy fee percent for form input.
func (c *SimulatorConfig) DefaultBuyFeeString() string {
	return decimal.NewFromFloat(c.DefaultBuyFee).String()
}

// DefaultSellFeeString formats the default sell fee percent for form input.
func (c *SimulatorConfig) DefaultSellFeeString() string {
	return decimal.NewFromFloat(c.DefaultSellFee).String()
}

// ServerConfig holds the JSON API listener settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	Provider       string `mapstructure:"provider"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"` // key=value
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// HealthConfig holds the health server settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("TAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "TAL_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "TAL_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "TAL_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.log_file", "TAL_LOG_FILE")

	// Market data
	v.BindEnv("market_data.base_url", "TAL_MARKET_DATA_URL", "COINGECKO_API_URL")
	v.BindEnv("market_data.api_key", "TAL_MARKET_DATA_API_KEY", "COINGECKO_API_KEY")
	v.BindEnv("market_data.requests_per_minute", "TAL_MARKET_DATA_RPM")

	// Server
	v.BindEnv("server.address", "TAL_SERVER_ADDRESS", "LISTEN_ADDR")

	// Telemetry
	v.BindEnv("telemetry.enabled", "TAL_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "TAL_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.provider", "TAL_OTEL_PROVIDER")
	v.BindEnv("telemetry.otlp_endpoint", "TAL_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.otlp_headers", "TAL_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "arbitrage-lens")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_file", "")

	// Market data defaults (CoinGecko public API)
	v.SetDefault("market_data.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("market_data.api_key", "")
	v.SetDefault("market_data.api_key_header", "x-cg-demo-api-key")
	v.SetDefault("market_data.timeout", "10s")
	v.SetDefault("market_data.requests_per_minute", 30)
	v.SetDefault("market_data.vs_currency", "usd")
	v.SetDefault("market_data.chart_days", 7)
	v.SetDefault("market_data.search_limit", 25)
	v.SetDefault("market_data.breaker_failures", 5)
	v.SetDefault("market_data.breaker_timeout", "30s")

	// Arbitrage defaults
	v.SetDefault("arbitrage.extra_dex_keywords", []string{})

	// Simulator defaults
	v.SetDefault("simulator.default_investment", 1000)
	v.SetDefault("simulator.default_buy_fee", 0.1)
	v.SetDefault("simulator.default_sell_fee", 0.1)

	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "arbitrage-lens")
	v.SetDefault("telemetry.provider", "CONSOLE_PROVIDER")
	v.SetDefault("telemetry.prometheus_port", 9090)

	// Health defaults
	v.SetDefault("health.port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.MarketData.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid market_data.base_url: %q", c.MarketData.BaseURL)
	}
	if c.MarketData.Timeout <= 0 {
		return fmt.Errorf("market_data.timeout must be positive")
	}
	if c.MarketData.RequestsPerMinute < 0 {
		return fmt.Errorf("market_data.requests_per_minute cannot be negative")
	}
	if c.MarketData.ChartDays <= 0 {
		return fmt.Errorf("market_data.chart_days must be positive")
	}
	if c.MarketData.SearchLimit <= 0 {
		return fmt.Errorf("market_data.search_limit must be positive")
	}
	if c.MarketData.VsCurrency == "" {
		return fmt.Errorf("market_data.vs_currency is required")
	}
	if c.Simulator.DefaultBuyFee < 0 || c.Simulator.DefaultSellFee < 0 {
		return fmt.Errorf("simulator fees cannot be negative")
	}
	if c.Simulator.DefaultInvestment < 0 {
		return fmt.Errorf("simulator.default_investment cannot be negative")
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}
