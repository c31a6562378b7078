package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetNotificationCounts(c *fiber.Ctx) error {
	counts, err := h.service.NotificationCounts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(counts)
}

func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	variants, err := h.service.LowStockVariants()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(variants)
}

func (h *DashboardHandler) GetOutOfStock(c *fiber.Ctx) error {
	variants, err := h.service.OutOfStockVariants()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(variants)
}
