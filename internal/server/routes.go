package server

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	arbDomain "github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/apperror"
	"github.com/fd1az/arbitrage-lens/internal/health"
)

func (s *FiberServer) RegisterRoutes() {
	s.App.Use(recover.New())
	s.App.Use(s.traceMiddleware)

	api := s.App.Group("/api")
	api.Get("/search", s.searchHandler)
	api.Get("/coins/:id/tickers", s.tickersHandler)
	api.Get("/coins/:id/arbitrage", s.arbitrageHandler)
	api.Get("/coins/:id/chart", s.chartHandler)
	api.Post("/simulate", s.simulateHandler)
	if s.services.Health != nil {
		api.Get("/health", s.healthHandler)
	}
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	report := s.services.Health.Run(c.UserContext())
	return c.Status(health.StatusCode(report)).JSON(report)
}

func (s *FiberServer) searchHandler(c *fiber.Ctx) error {
	query := c.Query("q")
	coins, err := s.services.Market.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"query": strings.TrimSpace(query),
		"coins": coins,
	})
}

func (s *FiberServer) tickersHandler(c *fiber.Ctx) error {
	coinID := c.Params("id")
	tickers, err := s.services.Market.Tickers(c.UserContext(), coinID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"coin_id": coinID,
		"tickers": tickers,
	})
}

func (s *FiberServer) arbitrageHandler(c *fiber.Ctx) error {
	analysis, err := s.services.Analyzer.Analyze(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(analysis)
}

func (s *FiberServer) chartHandler(c *fiber.Ctx) error {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperror.New(apperror.CodeInvalidChartRange,
				apperror.WithMessage("days must be a positive whole number"),
				apperror.WithContext("days"))
		}
		days = n
	}

	chart, err := s.services.Market.Chart(c.UserContext(), c.Params("id"), days)
	if err != nil {
		return err
	}
	return c.JSON(chart)
}

func (s *FiberServer) simulateHandler(c *fiber.Ctx) error {
	var in arbDomain.SimulationInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.New(apperror.CodeInvalidInput,
			apperror.WithMessage("Request body must be a JSON simulation input"),
			apperror.WithCause(err))
	}

	result, err := s.services.Simulator.Simulate(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"input":      in,
		"result":     result,
		"profitable": result.IsProfitable(),
	})
}
