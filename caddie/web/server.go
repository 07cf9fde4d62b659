package web

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/coffeegolfbot/caddie/caddie/scores"
)

// Server is the debug and integration API. It exposes the score document
// and leaderboards as JSON, plus test routes for injecting synthetic
// scores without going through Discord.
type Server struct {
	App     *fiber.App
	store   *scores.Store
	version string
	commit  string
}

func NewServer(store *scores.Store, version, commit string) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Caddie API",
		ServerHeader: "Caddie",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(loggingMiddleware())

	s := &Server{App: app, store: store, version: version, commit: commit}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.App.Get("/healthz", s.health)

	api := s.App.Group("/api")
	api.Get("/data", s.fullData)
	api.Get("/dates", s.dates)
	api.Get("/scores/today", s.scoresToday)
	api.Get("/scores/recent", s.scoresRecent)
	api.Get("/scores/date", s.scoresDate)

	test := api.Group("/test")
	test.Post("/score", s.testScore)
	test.Post("/scores/bulk", s.testScoresBulk)

	s.App.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not Found",
		})
	})
}

// Listen blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	slog.Info("Starting API server", slog.String("address", addr))
	return s.App.Listen(addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		statusCode := c.Response().StatusCode()
		level := slog.LevelInfo
		if statusCode >= 500 {
			level = slog.LevelError
		} else if statusCode >= 400 {
			level = slog.LevelWarn
		}

		logger := slog.With(
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.IP()),
		)
		if err != nil {
			logger = logger.With(slog.String("error", err.Error()))
		}
		logger.Log(c.Context(), level, "HTTP request processed")

		return err
	}
}
