package service

import (
	"errors"
	"fmt"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleLineInput is one requested line of a sale. Lines without a variant
// are free-form (no stock tracking) and are always treated as fulfilled.
type SaleLineInput struct {
	ProductID   *uuid.UUID `json:"product_id"`
	VariantID   *uuid.UUID `json:"variant_id"`
	ProductName string     `json:"product_name" validate:"required"`
	Color       string     `json:"color"`
	Size        string     `json:"size"`
	Quantity    int        `json:"quantity" validate:"required,gt=0"`
	UnitPrice   int64      `json:"unit_price" validate:"gte=0"`
}

type CreateSaleInput struct {
	CustomerID     *uuid.UUID          `json:"customer_id"`
	Items          []SaleLineInput     `json:"items" validate:"required,min=1,dive"`
	DiscountAmount int64               `json:"discount_amount" validate:"gte=0"`
	PaymentMethod  model.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card transfer credit mixed"`
	PaidAmount     int64               `json:"paid_amount" validate:"gte=0"`
	Memo           string              `json:"memo"`
}

// SaleService coordinates the sale workflow: split each requested line into
// fulfilled and backordered quantity, bill the full requested amount, and
// commit the sale header, items, backorders, stock decrements and credit in
// one database transaction.
type SaleService interface {
	Create(input *CreateSaleInput) (*model.Sale, error)
	// Cancel restores stock for each fulfilled line and reverses the credit
	// amount, then flips the status. Pending backorders of the sale are NOT
	// cancelled; the caller cancels them explicitly if wanted.
	Cancel(id uuid.UUID) error
	GetByID(id uuid.UUID) (*model.Sale, error)
	List(opts repository.SaleListOptions) ([]model.Sale, error)
	TodayStats() (*repository.TodaySaleStats, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
	ledger      LedgerService
	credit      CreditService
	db          *gorm.DB
}

func NewSaleService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, seqRepo repository.SequenceRepository, ledger LedgerService, credit CreditService, db *gorm.DB) SaleService {
	return &saleService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		seqRepo:     seqRepo,
		ledger:      ledger,
		credit:      credit,
		db:          db,
	}
}

// dateOnly truncates a timestamp to its calendar day in local time.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type saleLineSplit struct {
	line        SaleLineInput
	fulfilled   int
	backordered int
}

func (s *saleService) Create(input *CreateSaleInput) (*model.Sale, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	var sale *model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// 1. Split each line into fulfilled vs backordered quantity based on
		// current stock. The read here only decides the split; the ledger's
		// conditional decrement below is the final authority.
		splits := make([]saleLineSplit, 0, len(input.Items))
		var total int64
		hasBackorder := false
		for _, line := range input.Items {
			fulfilled := line.Quantity
			backordered := 0
			if line.VariantID != nil {
				stock, err := s.productRepo.VariantStock(tx, *line.VariantID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrNotFound
					}
					return err
				}
				if stock < line.Quantity {
					fulfilled = stock
					backordered = line.Quantity - stock
				}
			}
			if backordered > 0 {
				hasBackorder = true
			}
			// The customer is billed for the whole requested quantity even
			// when part of it ships later as a backorder.
			total += int64(line.Quantity) * line.UnitPrice
			splits = append(splits, saleLineSplit{line, fulfilled, backordered})
		}

		// 2. Amounts
		final := total - input.DiscountAmount
		credit := final - input.PaidAmount
		if credit < 0 {
			credit = 0
		}

		// 3. Credit and backorders need an identifiable counterparty
		if (credit > 0 || hasBackorder) && input.CustomerID == nil {
			return ErrCustomerRequired
		}

		// 4. Day-scoped sale number
		seq, err := s.seqRepo.Next(tx, "sale", now)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("S%s-%03d", now.Format("20060102"), seq)

		// 5. Sale header + fulfilled items. Fully backordered lines carry no
		// sale item; their quantity lives on the backorder record.
		sale = &model.Sale{
			CustomerID:     input.CustomerID,
			SaleNumber:     number,
			SaleDate:       dateOnly(now),
			TotalAmount:    total,
			DiscountAmount: input.DiscountAmount,
			FinalAmount:    final,
			PaymentMethod:  input.PaymentMethod,
			PaidAmount:     input.PaidAmount,
			CreditAmount:   credit,
			Status:         model.SaleCompleted,
			Memo:           input.Memo,
		}
		for _, sp := range splits {
			if sp.fulfilled <= 0 {
				continue
			}
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   sp.line.ProductID,
				VariantID:   sp.line.VariantID,
				ProductName: sp.line.ProductName,
				Color:       sp.line.Color,
				Size:        sp.line.Size,
				Quantity:    sp.fulfilled,
				UnitPrice:   sp.line.UnitPrice,
				Amount:      int64(sp.fulfilled) * sp.line.UnitPrice,
			})
		}
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		itemByVariant := make(map[uuid.UUID]uuid.UUID)
		for _, item := range sale.Items {
			if item.VariantID != nil {
				itemByVariant[*item.VariantID] = item.ID
			}
		}

		// 6. Stock decrement per fulfilled line
		for _, sp := range splits {
			if sp.fulfilled > 0 && sp.line.VariantID != nil {
				if _, _, err := s.ledger.Adjust(tx, *sp.line.VariantID, -sp.fulfilled, model.StockChangeSale, &sale.ID, sale.SaleNumber); err != nil {
					return err
				}
			}
		}

		// 7. Backorder records; no stock moves until completion
		for _, sp := range splits {
			if sp.backordered == 0 || sp.line.VariantID == nil {
				continue
			}
			var itemID *uuid.UUID
			if id, ok := itemByVariant[*sp.line.VariantID]; ok {
				itemID = &id
			}
			backorder := &model.Backorder{
				SaleID:      sale.ID,
				SaleItemID:  itemID,
				CustomerID:  *input.CustomerID,
				VariantID:   *sp.line.VariantID,
				ProductName: sp.line.ProductName,
				Color:       sp.line.Color,
				Size:        sp.line.Size,
				Quantity:    sp.backordered,
				Status:      model.BackorderPending,
			}
			if err := tx.Create(backorder).Error; err != nil {
				return err
			}
		}

		// 8. Credit last, after stock, matching observable ordering
		if credit > 0 {
			if err := s.credit.Apply(tx, *input.CustomerID, credit, "sale "+sale.SaleNumber); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) Cancel(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sale.Status == model.SaleCancelled {
			return ErrAlreadyProcessed
		}

		for _, item := range sale.Items {
			if item.VariantID == nil {
				continue
			}
			if _, _, err := s.ledger.Adjust(tx, *item.VariantID, item.Quantity, model.StockChangeCancel, &sale.ID, "sale cancelled"); err != nil {
				return err
			}
		}

		if sale.CreditAmount > 0 && sale.CustomerID != nil {
			if err := s.credit.Apply(tx, *sale.CustomerID, -sale.CreditAmount, "sale "+sale.SaleNumber+" cancelled"); err != nil {
				return err
			}
		}

		return tx.Model(&model.Sale{}).Where("id = ?", sale.ID).Update("status", model.SaleCancelled).Error
	})
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return sale, err
}

func (s *saleService) List(opts repository.SaleListOptions) ([]model.Sale, error) {
	return s.saleRepo.FindAll(opts)
}

func (s *saleService) TodayStats() (*repository.TodaySaleStats, error) {
	return s.saleRepo.TodayStats(dateOnly(time.Now()))
}
