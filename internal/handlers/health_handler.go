package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slicehub/pizza-service/internal/database"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	status := "healthy"
	if err := database.Ping(); err != nil {
		dbStatus = "down"
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"db":        dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
