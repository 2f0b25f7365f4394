package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/persistence"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// HealthHandler serves the public endpoints: API description, health check
// and database diagnostics.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Root handles GET / with the API description and endpoint map.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Employee Management System API",
		"status":  "running",
		"version": h.version,
		"endpoints": fiber.Map{
			"GET /":                          "API information",
			"GET /health":                    "Health check",
			"GET /test-db":                   "Database connection test",
			"POST /api/auth/login":           "Login",
			"GET /api/auth/verify":           "Verify token",
			"POST /api/auth/change-password": "Change password",
			"GET /api/employees":             "Get all employees",
			"GET /api/employees/:id":         "Get single employee",
			"POST /api/employees":            "Create employee",
			"PUT /api/employees/:id":         "Update employee",
			"DELETE /api/employees/:id":      "Delete employee",
			"GET /api/employees/stats":       "Get statistics",
		},
	})
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := h.postgres.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": dbStatus,
		"version":  h.version,
	})
}

// TestDB handles GET /test-db, reporting server version and table counts.
func (h *HealthHandler) TestDB(c *fiber.Ctx) error {
	pool := h.postgres.PoolHandle()
	if pool == nil {
		return apperrors.NewInternalError(nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	var version string
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return apperrors.NewInternalError(err)
	}

	tables := fiber.Map{}
	for _, table := range []string{"departments", "employees", "admin_users"} {
		var count int64
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return apperrors.NewInternalError(err)
		}
		tables[table] = count
	}

	return c.JSON(fiber.Map{
		"status":           "success",
		"message":          "Database connected successfully",
		"postgres_version": version,
		"tables":           tables,
	})
}
