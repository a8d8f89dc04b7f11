package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/praceando/event-platform/internal/api/http/handlers"
	"github.com/praceando/event-platform/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Gateway *auth.Gateway
}

// RegisterRoutes wires the authentication surface and installs the gateway
// in front of everything else. Business handlers mounted afterwards are
// admitted or rejected by the route policy alone.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Gateway.Handle)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/keep-alive", cfg.Auth.KeepAlive)
}
