// Package server exposes the lookup, analysis and simulation operations as a JSON API.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	marketDomain "github.com/fd1az/arbitrage-lens/business/market/domain"
	"github.com/fd1az/arbitrage-lens/internal/apm"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/health"
	"github.com/fd1az/arbitrage-lens/internal/logger"
)

// MarketService is the market data surface the API serves.
type MarketService interface {
	Search(ctx context.Context, query string) ([]marketDomain.Coin, error)
	Tickers(ctx context.Context, coinID string) ([]marketDomain.TickerQuote, error)
	Chart(ctx context.Context, coinID string, days int) (*marketDomain.MarketChart, error)
}

// Analyzer produces an arbitrage analysis for a coin.
type Analyzer interface {
	Analyze(ctx context.Context, coinID string) (*arbDomain.Analysis, error)
}

// Simulator runs profit simulations.
type Simulator interface {
	Simulate(ctx context.Context, in arbDomain.SimulationInput) (arbDomain.SimulationResult, error)
}

// Services groups the application services behind the API.
type Services struct {
	Market    MarketService
	Analyzer  Analyzer
	Simulator Simulator
	// Health is optional; /api/health is only mounted when set.
	Health *health.Checker
}

// Config holds listener settings.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AppName      string
}

// upstream rate limit windows are per minute
const retryAfterSeconds = "30"

// FiberServer serves the JSON API.
type FiberServer struct {
	*fiber.App

	address  string
	services Services
	logger   logger.LoggerInterface
	tracer   apm.Tracer
}

// New creates the server and registers its routes.
func New(cfg Config, services Services, log logger.LoggerInterface) *FiberServer {
	if cfg.AppName == "" {
		cfg.AppName = "arbitrage-lens"
	}

	server := &FiberServer{
		address:  cfg.Address,
		services: services,
		logger:   log,
		tracer:   apm.NewTracer("api"),
	}

	server.App = fiber.New(fiber.Config{
		ServerHeader:          cfg.AppName,
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          server.errorHandler,
	})

	server.RegisterRoutes()
	return server
}

// Start listens until the listener fails or Shutdown is called.
func (s *FiberServer) Start() error {
	s.logger.Info(context.Background(), "api server listening", "address", s.address)
	return s.Listen(s.address)
}

// errorHandler renders every failure in the AppError response shape.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()

	var appErr *apperror.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
	case errors.As(err, &fiberErr):
		code := apperror.CodeInvalidInput
		if fiberErr.Code == fiber.StatusNotFound {
			code = apperror.CodeNotFound
		}
		appErr = apperror.New(code,
			apperror.WithMessage(fiberErr.Message),
			apperror.WithStatusCode(fiberErr.Code))
	default:
		appErr = apperror.Internal(apperror.CodeInternalError, "api", err)
	}

	if id := s.tracer.FromContext(ctx).TraceID(); id != "" {
		appErr = appErr.WithTraceID(id)
	}

	if appErr.Retryable() {
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
	}

	if appErr.StatusCode >= fiber.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", append([]any{"path", c.Path()}, appErr.ToLog()...)...)
	} else {
		s.logger.Debug(ctx, "request rejected", "path", c.Path(), "code", appErr.Code)
	}

	return c.Status(appErr.StatusCode).JSON(appErr.ToResponse())
}

// traceMiddleware starts a span per request and logs its outcome.
func (s *FiberServer) traceMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	ctx, span := s.tracer.Start(c.UserContext(), c.Method()+" "+c.Path())
	defer span.End()
	c.SetUserContext(ctx)

	err := c.Next()
	span.Fail(err)

	span.SetAttributes(
		attribute.String("http.method", c.Method()),
		attribute.String("http.path", c.Path()),
	)
	s.logger.Debug(ctx, "request", "method", c.Method(), "path", c.Path(), "duration", time.Since(start))
	return err
}
