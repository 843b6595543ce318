// Package server assembles the fiber application: middleware, API routes and the health check.
package server

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"pickup/internal/config"
	"pickup/internal/handlers"
	"pickup/internal/repositories"
	"pickup/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const healthCheckTimeout = 2 * time.Second

// Dependencies are the collaborators the routes are served by.
type Dependencies struct {
	Store     repositories.Store
	Events    *services.EventService
	Users     *services.UserService
	Logger    *slog.Logger
	AccessLog io.Writer // defaults to stdout
}

// NewApp builds the fiber app with every route mounted under /api.
func NewApp(cfg config.Config, deps Dependencies) *fiber.App {
	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	app := fiber.New(fiber.Config{
		AppName:      "pickup",
		ErrorHandler: handlers.ErrorHandler(deps.Logger),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", healthHandler(deps.Store))

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewEventHandler(deps.Events, deps.Logger).RegisterRoutes(api)
	handlers.NewSportHandler(deps.Events).RegisterRoutes(api)
	handlers.NewUserHandler(deps.Users, deps.Logger).RegisterRoutes(api)

	app.Use(handlers.RouteNotFound)
	return app
}

func healthHandler(store repositories.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "connected",
		})
	}
}
