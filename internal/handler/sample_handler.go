package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SampleHandler struct {
	service service.SampleService
}

func NewSampleHandler(s service.SampleService) *SampleHandler {
	return &SampleHandler{service: s}
}

func (h *SampleHandler) CreateSample(c *fiber.Ctx) error {
	var input service.CreateSampleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sample, err := h.service.Create(&input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sample lent", "data": sample})
}

func (h *SampleHandler) ReturnSample(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sample ID"})
	}
	if err := h.service.Return(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sample returned"})
}

func (h *SampleHandler) CancelSample(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sample ID"})
	}
	if err := h.service.Cancel(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sample lend cancelled"})
}

func (h *SampleHandler) GetSamples(c *fiber.Ctx) error {
	status := model.SampleStatus(c.Query("status"))
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		customerID = &id
	}

	samples, err := h.service.List(status, customerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(samples)
}
