package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReturnHandler struct {
	service service.ReturnService
}

func NewReturnHandler(s service.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: s}
}

func (h *ReturnHandler) CreateReturn(c *fiber.Ctx) error {
	var input service.CreateReturnInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ret, err := h.service.Create(&input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Return created", "data": ret})
}

func (h *ReturnHandler) CompleteReturn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid return ID"})
	}
	if err := h.service.Complete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Return completed"})
}

func (h *ReturnHandler) CancelReturn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid return ID"})
	}
	if err := h.service.Cancel(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Return cancelled"})
}

func (h *ReturnHandler) GetReturns(c *fiber.Ctx) error {
	opts := repository.ReturnListOptions{
		Status: model.ReturnStatus(c.Query("status")),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		opts.CustomerID = &id
	}
	if raw := c.Query("sale_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
		}
		opts.SaleID = &id
	}

	returns, err := h.service.List(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(returns)
}
