package handlers

import (
	"bistro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterRoutes registers the admin-only stats routes.
func (h *StatsHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Get("/admin-stats", g.Token, g.Admin, h.HandleAdminStats)
	router.Get("/order-stats", g.Token, g.Admin, h.HandleOrderStats)
}

// HandleAdminStats returns user, menu and order counts plus total revenue.
func (h *StatsHandler) HandleAdminStats(c *fiber.Ctx) error {
	stats, err := h.service.AdminStats(c.UserContext())
	if err != nil {
		return storeError(c, "Could not compute admin stats", err)
	}
	return c.JSON(stats)
}

// HandleOrderStats returns quantity and revenue per menu category.
func (h *StatsHandler) HandleOrderStats(c *fiber.Ctx) error {
	stats, err := h.service.OrderStats(c.UserContext())
	if err != nil {
		return storeError(c, "Could not compute order stats", err)
	}
	return c.JSON(stats)
}
