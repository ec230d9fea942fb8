package handlers

import (
	"github.com/drivedeck/drivedeck/internal/config"
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles the health probe route
type HealthHandler struct {
	Store storage.Storage
	Cfg   *config.Config
}

// Check handles GET /api/health
// @Summary Health check
// @Description Probe the storage backend and report service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.Store)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
