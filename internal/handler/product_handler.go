package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productRepo repository.ProductRepository
	ledger      service.LedgerService
}

func NewProductHandler(pRepo repository.ProductRepository, ledger service.LedgerService) *ProductHandler {
	return &ProductHandler{productRepo: pRepo, ledger: ledger}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&product); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validator.Message(errs)})
	}
	if err := h.productRepo.Create(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	existing, err := h.productRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	existing.Code = req.Code
	existing.Name = req.Name
	existing.Category = req.Category
	existing.CostPrice = req.CostPrice
	existing.SalePrice = req.SalePrice
	existing.Memo = req.Memo
	existing.IsActive = req.IsActive

	if err := h.productRepo.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": existing})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	product, err := h.productRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateVariant(c *fiber.Ctx) error {
	var variant model.ProductVariant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&variant); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": validator.Message(errs)})
	}
	// Opening stock arrives through the ledger so the first log entry
	// already reconciles; the variant row itself starts at zero.
	opening := variant.Stock
	variant.Stock = 0
	if err := h.productRepo.CreateVariant(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if opening > 0 {
		if _, err := h.ledger.AdjustStock(variant.ID, opening, model.StockChangeIncoming, "opening stock"); err != nil {
			return respondErr(c, err)
		}
	}
	return c.Status(201).JSON(fiber.Map{"message": "Variant created", "data": variant})
}

// AdjustStock handles manual corrections and incoming stock. The delta goes
// through the ledger like every other stock change.
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	var req struct {
		Delta      int                   `json:"delta"`
		ChangeType model.StockChangeType `json:"change_type"`
		Memo       string                `json:"memo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ChangeType == "" {
		req.ChangeType = model.StockChangeAdjustment
	}

	entry, err := h.ledger.AdjustStock(id, req.Delta, req.ChangeType, req.Memo)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": entry})
}

func (h *ProductHandler) GetStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}
	stock, err := h.ledger.CurrentStock(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"variant_id": id, "stock": stock})
}

func (h *ProductHandler) GetStockHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}
	entries, err := h.ledger.History(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}
