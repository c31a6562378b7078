package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BackorderHandler struct {
	service service.BackorderService
}

func NewBackorderHandler(s service.BackorderService) *BackorderHandler {
	return &BackorderHandler{service: s}
}

func (h *BackorderHandler) GetBackorders(c *fiber.Ctx) error {
	status := model.BackorderStatus(c.Query("status"))
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		customerID = &id
	}

	backorders, err := h.service.List(status, customerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(backorders)
}

func (h *BackorderHandler) CompleteBackorder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid backorder ID"})
	}
	if err := h.service.Complete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Backorder completed"})
}

func (h *BackorderHandler) CancelBackorder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid backorder ID"})
	}
	if err := h.service.Cancel(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Backorder cancelled"})
}

func (h *BackorderHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}
