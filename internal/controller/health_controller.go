package controller

import (
	"github.com/gofiber/fiber/v2"

	"analytics-gateway/internal/config"
	"analytics-gateway/internal/model"
)

const statusHealthy = "healthy"

type HealthController interface {
	Root(c *fiber.Ctx) error
	Health(c *fiber.Ctx) error
}

type healthController struct {
	cfg *config.Config
}

// NewHealthController builds a HealthController reporting cfg's identity.
func NewHealthController(cfg *config.Config) HealthController {
	return &healthController{cfg: cfg}
}

func (h *healthController) Root(c *fiber.Ctx) error {
	return c.JSON(h.status())
}

// Health also reports the public base URL.
func (h *healthController) Health(c *fiber.Ctx) error {
	resp := h.status()
	resp.BaseURL = h.cfg.BaseURL
	return c.JSON(resp)
}

func (h *healthController) status() model.HealthResponse {
	return model.HealthResponse{
		Status:      statusHealthy,
		Service:     h.cfg.ProjectName,
		Version:     h.cfg.Version,
		Environment: h.cfg.Environment,
	}
}
