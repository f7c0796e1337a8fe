package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/project-dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/ping", cfg.Health.Ping)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)

	projects := api.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Get("/", cfg.Projects.List)
	projects.Post("/", auth.RequireProjectManager(), cfg.Projects.Create)
	projects.Get("/:id", cfg.Projects.Get)

	api.Get("/users", cfg.AuthMiddleware.Handle, cfg.Users.List)
}
