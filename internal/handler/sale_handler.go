package handler

import (
	"time"

	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var input service.CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Create(&input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale created", "data": sale})
}

func (h *SaleHandler) CancelSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	if err := h.service.Cancel(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale cancelled"})
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	sale, err := h.service.GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	var opts repository.SaleListOptions
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		opts.Date = &date
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		opts.CustomerID = &customerID
	}

	sales, err := h.service.List(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetTodayStats(c *fiber.Ctx) error {
	stats, err := h.service.TodayStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}
