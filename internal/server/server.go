package server

import (
	"errors"
	"strings"
	"time"

	"building/internal/handlers"
	"building/internal/middleware"
	"building/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	LoginRateLimit int
}

// Services bundles the services the routes are served by.
type Services struct {
	Users   *services.UserService
	Reports *services.ReportService
	Auth    *services.AuthService
}

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(svc Services, opts Options, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(newCORS(opts.AllowedOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handlers.NewAuthHandler(svc.Auth, opts.LoginRateLimit).RegisterRoutes(app)

	authRequired := middleware.AuthRequired(svc.Auth, logger)
	handlers.NewUserHandler(svc.Users).RegisterRoutes(app, authRequired)
	handlers.NewReportHandler(svc.Reports).RegisterRoutes(app, authRequired)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "404 Not Found",
		})
	})

	return app
}

func newCORS(origins []string) fiber.Handler {
	allowOrigins := strings.Join(origins, ",")
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		// Credentials may not be combined with a wildcard origin.
		AllowCredentials: allowOrigins != "*" && allowOrigins != "",
	})
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		logger.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
