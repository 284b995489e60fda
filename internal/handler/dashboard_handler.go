package handler

import (
	"go-skystore/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetModerationStats returns the moderation backlog counts
// GET /api/v1/dashboard/moderation
func (h *DashboardHandler) GetModerationStats(c *fiber.Ctx) error {
	stats, err := h.service.GetModerationStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch moderation stats"})
	}
	return c.JSON(stats)
}
