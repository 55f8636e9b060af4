// Package main is the entry point for the token arbitrage lens.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fd1az/arbitrage-lens/business/arbitrage"
	arbitrageApp "github.com/fd1az/arbitrage-lens/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/arbitrage-lens/business/arbitrage/di"
	arbitrageDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/business/arbitrage/infra"
	"github.com/fd1az/arbitrage-lens/business/market"
	marketDI "github.com/fd1az/arbitrage-lens/business/market/di"
	"github.com/fd1az/arbitrage-lens/internal/apm"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/config"
	"github.com/fd1az/arbitrage-lens/internal/health"
	"github.com/fd1az/arbitrage-lens/internal/logger"
	"github.com/fd1az/arbitrage-lens/internal/metrics"
	"github.com/fd1az/arbitrage-lens/internal/monolith"
	"github.com/fd1az/arbitrage-lens/internal/server"
	"github.com/fd1az/arbitrage-lens/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type mode int

const (
	modeTUI mode = iota
	modeCLI
	modeServe
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Print a one-shot report for -query instead of starting the TUI")
	query := flag.String("query", "", "Token to look up in CLI mode")
	serveMode := flag.Bool("serve", false, "Serve the JSON API instead of starting the TUI")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("arbitrage-lens %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	m := modeTUI
	switch {
	case *serveMode:
		m = modeServe
	case *cliMode:
		m = modeCLI
		if *query == "" {
			fmt.Fprintln(os.Stderr, "error: -cli requires -query")
			os.Exit(2)
		}
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if m != modeTUI {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	// Run application
	if err := run(ctx, *configPath, m, *query); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, m mode, query string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := newLogger(cfg, m)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info(ctx, "starting arbitrage lens",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Initialize observability if enabled
	meterProvider, stopTelemetry, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	// Create monolith (application container)
	mono := monolith.New(cfg, log)

	var reporter arbitrageApp.Reporter
	switch m {
	case modeTUI:
		reporter = infra.NewTUIReporter(nil)
	case modeCLI:
		reporter = infra.NewConsoleReporter(os.Stdout)
	}

	// Define modules in dependency order
	modules := []monolith.Module{
		&market.Module{},
		&arbitrage.Module{Reporter: reporter, MeterProvider: meterProvider},
	}

	// Register all module services
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}
	if reporter != nil {
		defer reporter.Stop()
	}

	// Health server reports the market data circuit
	checker := health.NewChecker(version)
	checker.Register("market_data", health.BreakerCheck(marketDI.GetCoinGeckoClient(mono.Services()).Breaker()))
	healthServer := health.NewServer(cfg.Health.Port, checker, log)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", cfg.Health.Port)
	}
	defer healthServer.Stop(context.Background())

	switch m {
	case modeCLI:
		return runCLI(ctx, mono, reporter, query)
	case modeServe:
		return runServer(ctx, mono, checker)
	default:
		return runTUI(ctx, mono)
	}
}

// newLogger writes to stderr outside the TUI. In the TUI it writes to the
// configured rotating file, or nowhere.
func newLogger(cfg *config.Config, m mode) (*logger.Logger, func(), error) {
	level := logger.ParseLevel(cfg.App.LogLevel)

	if m != modeTUI {
		return logger.New(os.Stderr, level, cfg.App.Name, nil), func() {}, nil
	}

	if cfg.App.LogFile == "" {
		return logger.New(io.Discard, level, cfg.App.Name, nil), func() {}, nil
	}

	w, err := logger.NewRotatingFile(logger.DefaultFileConfig(cfg.App.LogFile))
	if err != nil {
		return nil, nil, err
	}
	return logger.New(w, level, cfg.App.Name, nil), func() { w.Close() }, nil
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (metrics.MetricProvider, func(), error) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}, nil
	}

	provider := apm.Provider(cfg.Telemetry.Provider)
	traceProvider, err := apm.NewTraceProvider(log,
		apm.WithServiceName(cfg.Telemetry.ServiceName),
		apm.WithProvider(provider, apm.ExporterConfig{
			Endpoint: cfg.Telemetry.OTLPEndpoint,
			Headers:  cfg.Telemetry.OTLPHeaders,
		}, log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init tracing: %w", err)
	}

	metricOpts := []metrics.OptionFn{
		metrics.WithServiceName(cfg.Telemetry.ServiceName),
		metrics.WithProviderConfig(metrics.NewPrometheusConfig()),
	}
	if provider == apm.OTLPGRPCProvider && cfg.Telemetry.OTLPEndpoint != "" {
		headers, err := apm.ParseHeaders(cfg.Telemetry.OTLPHeaders)
		if err != nil {
			return nil, nil, err
		}
		metricOpts = append(metricOpts, metrics.WithProviderConfig(
			metrics.NewOtelCollectorConfig(cfg.Telemetry.OTLPEndpoint, headers, metrics.InsecureOtel)))
	}

	meterProvider, err := metrics.NewMetricProvider(metricOpts...)
	if err != nil {
		traceProvider.Stop()
		return nil, nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	go func() {
		port := strconv.Itoa(cfg.Telemetry.PrometheusPort)
		if err := metrics.ServePrometheusMetrics(metricsCtx, log, metrics.WithPort(port)); err != nil {
			log.Error(ctx, "prometheus metrics server failed", "error", err)
		}
	}()

	stop := func() {
		stopMetrics()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		meterProvider.Shutdown(shutdownCtx)
		traceProvider.Stop()
	}
	return meterProvider, stop, nil
}

// runCLI looks up query, analyses the top result and simulates its opportunity.
func runCLI(ctx context.Context, mono *monolith.App, reporter arbitrageApp.Reporter, query string) error {
	services := mono.Services()
	log := mono.Logger()

	coins, err := marketDI.GetMarketService(services).Search(ctx, query)
	if err != nil {
		reporter.ReportError(ctx, err)
		return err
	}
	if len(coins) == 0 {
		err := apperror.New(apperror.CodeCoinNotFound,
			apperror.WithMessage(fmt.Sprintf("No ranked token matches %q", query)))
		reporter.ReportError(ctx, err)
		return err
	}

	coin := coins[0]
	log.Info(ctx, "analysing top search result", "coin", coin.ID, "rank", coin.Rank())

	// the analyzer reports through the console reporter
	analysis, err := arbitrageDI.GetAnalyzer(services).Analyze(ctx, coin.ID)
	if err != nil {
		return err
	}
	if !analysis.HasOpportunity() {
		return nil
	}

	cfg := mono.Config()
	opp := analysis.Opportunity
	in := arbitrageDomain.SimulationInput{
		Investment: cfg.Simulator.DefaultInvestmentString(),
		BuyPrice:   strconv.FormatFloat(opp.Buy.Price, 'f', -1, 64),
		SellPrice:  strconv.FormatFloat(opp.Sell.Price, 'f', -1, 64),
	}
	simulator := arbitrageDI.GetSimulator(services)
	result, err := simulator.Simulate(ctx, in)
	if err != nil {
		reporter.ReportError(ctx, err)
		return err
	}

	defaults := simulator.Defaults()
	in.BuyFeePercent, in.SellFeePercent = defaults.BuyFeePercent, defaults.SellFeePercent
	reporter.ReportSimulation(ctx, in, result)
	return nil
}

func runServer(ctx context.Context, mono *monolith.App, checker *health.Checker) error {
	cfg := mono.Config()
	log := mono.Logger()
	services := mono.Services()

	api := server.New(server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AppName:      cfg.App.Name,
	}, server.Services{
		Market:    marketDI.GetMarketService(services),
		Analyzer:  arbitrageDI.GetAnalyzer(services),
		Simulator: arbitrageDI.GetSimulator(services),
		Health:    checker,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- api.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down api server")

	// The server has 5 seconds to finish the requests it is handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func runTUI(ctx context.Context, mono *monolith.App) error {
	backend := newTUIBackend(mono)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ui.Run(backend)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	case <-ctx.Done():
		if ui.Program != nil {
			ui.Program.Quit()
		}
		return <-errCh
	}
}
