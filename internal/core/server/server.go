package server

import (
	"fmt"
	"time"

	"label-printer/internal/core/config"
	"label-printer/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "label-printer/docs/swagger"
)

// RequestIDHeader is the response header carrying the request id.
const RequestIDHeader = "X-Ray-ID"

// writeGrace is added to the print timeout so a timed-out print can still send its 504.
const writeGrace = 5 * time.Second

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "label-printer",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.Printer.Timeout() + writeGrace,
	})

	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Header: RequestIDHeader,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
		Fields: []string{"requestId", "status", "method", "url", "latency"},
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight prints, at most one
// print timeout plus a grace period.
func (s *Server) Shutdown() error {
	return s.App.ShutdownWithTimeout(s.cfg.Printer.Timeout() + writeGrace)
}
