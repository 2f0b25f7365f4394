package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything under /api/employees and the
// verify/change-password endpoints require a valid bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)
	app.Get("/test-db", cfg.Health.TestDB)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	employees := app.Group("/api/employees", cfg.AuthMiddleware.Handle)
	employees.Get("/", cfg.Employees.List)
	employees.Get("/stats", cfg.Employees.Stats)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Post("/", cfg.Employees.Create)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)
}
