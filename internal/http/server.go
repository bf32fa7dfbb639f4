package http

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"analytics-gateway/internal/config"
	"analytics-gateway/internal/controller"
	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/metrics"
	"analytics-gateway/internal/routes"
)

// Server wraps the Fiber application setup.
type Server struct {
	app *fiber.App
}

// Handlers are the controllers served by the gateway.
type Handlers struct {
	Analytics controller.AnalyticsController
	Mailchimp controller.MailchimpController
	Health    controller.HealthController
}

// NewServer configures middleware and routes. A nil collector disables /metrics.
func NewServer(appCfg *config.Config, logger *slog.Logger, collector *metrics.Collector, h Handlers) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               appCfg.ProjectName,
		DisableStartupMessage: true,
		Prefork:               appCfg.FiberPrefork,
		ErrorHandler:          controller.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(corsMiddleware(appCfg))
	app.Use(requestLogger(logger))

	ctrls := routes.Controllers{
		Analytics: h.Analytics,
		Mailchimp: h.Mailchimp,
		Health:    h.Health,
	}
	if collector != nil {
		ctrls.Metrics = adaptor.HTTPHandler(collector.Handler())
	}
	routes.Register(app, appCfg.APIPrefix, ctrls)

	return &Server{app: app}
}

// Listen runs the server on provided addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func corsMiddleware(cfg *config.Config) fiber.Handler {
	origins := strings.Join(cfg.CORSOrigins, ",")
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join(cfg.CORSMethods, ","),
		AllowHeaders: strings.Join(cfg.CORSHeaders, ","),
		// Credentials cannot be combined with a wildcard origin.
		AllowCredentials: !strings.Contains(origins, "*"),
		ExposeHeaders:    "X-Total-Count, X-Request-ID",
		MaxAge:           3600,
	})
}

// requestLogger logs one line per request once the handler chain has run,
// including errors rendered by the error handler.
func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int(logging.KeyStatus, status),
			slog.Duration(logging.KeyDuration, time.Since(start)),
			logging.RequestID(c.GetRespHeader(fiber.HeaderXRequestID)),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request completed", append(attrs, logging.Err(chainErr))...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
		return nil
	}
}
