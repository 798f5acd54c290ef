package api

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/blobcache/internal/blobcache"
	"github.com/p-blackswan/blobcache/internal/health"
	"github.com/p-blackswan/blobcache/internal/metrics"
	"github.com/p-blackswan/blobcache/internal/requestid"
)

// Server is the blob cache's Fiber application.
type Server struct {
	app      *fiber.App
	handlers *Handlers
	logger   zerolog.Logger
}

// NewServer builds and wires a Server around cache.
func NewServer(cache *blobcache.Safe[string, []byte], m *metrics.Metrics, checker *health.Checker, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	handlers := NewHandlers(cache, m, checker, logger)

	s := &Server{
		app:      app,
		handlers: handlers,
		logger:   logger.With().Str("component", "blob_api_server").Logger(),
	}

	s.setupMiddleware(logger)
	s.setupRoutes(m, checker)

	return s
}

func (s *Server) setupMiddleware(logger zerolog.Logger) {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// The original collaborator allows any origin/method/header for this
	// API; it's a content-addressed blob store, not a session-scoped one.
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "*",
		AllowHeaders: "*",
	}))

	s.app.Use(func(c *fiber.Ctx) error {
		_, reqID := requestid.New(c.Context())
		c.Set("X-Request-ID", reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	s.app.Use(func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/healthz" || path == "/readyz" || path == "/metrics" {
			return c.Next()
		}
		logger.Info().
			Str("method", c.Method()).
			Str("path", path).
			Str("ip", c.IP()).
			Str("request_id", fmt.Sprintf("%v", c.Locals("request_id"))).
			Msg("blob cache request")
		return c.Next()
	})
}

func (s *Server) setupRoutes(m *metrics.Metrics, checker *health.Checker) {
	s.app.Get("/healthz", s.handlers.Liveness)
	s.app.Get("/readyz", s.handlers.Readiness)

	apiGroup := s.app.Group("/api")
	apiGroup.Post("/lru", s.handlers.Upload)
	apiGroup.Get("/lru", s.handlers.Download)
}

// Start starts the server. Blocks until stopped.
func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("blob cache server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("blob cache server shutting down")
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error().
			Err(err).
			Int("status", code).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Msg("unhandled error")

		return c.Status(code).JSON(failure("50000", err.Error()))
	}
}
