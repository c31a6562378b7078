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

type CreateReturnInput struct {
	SaleID     uuid.UUID `json:"sale_id" validate:"uuid_required"`
	SaleItemID uuid.UUID `json:"sale_item_id" validate:"uuid_required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice  int64     `json:"unit_price" validate:"gte=0"`
	Reason     string    `json:"reason"`
	Memo       string    `json:"memo"`
}

// ReturnService converts a sold line back into stock. Creation only records
// the pending return; stock and credit move at completion. The cumulative
// non-cancelled return quantity per sale item can never exceed the sold
// quantity.
type ReturnService interface {
	Create(input *CreateReturnInput) (*model.Return, error)
	Complete(id uuid.UUID) error
	Cancel(id uuid.UUID) error
	List(opts repository.ReturnListOptions) ([]model.Return, error)
}

type returnService struct {
	returnRepo repository.ReturnRepository
	seqRepo    repository.SequenceRepository
	ledger     LedgerService
	credit     CreditService
	db         *gorm.DB
}

func NewReturnService(rRepo repository.ReturnRepository, seqRepo repository.SequenceRepository, ledger LedgerService, credit CreditService, db *gorm.DB) ReturnService {
	return &returnService{
		returnRepo: rRepo,
		seqRepo:    seqRepo,
		ledger:     ledger,
		credit:     credit,
		db:         db,
	}
}

func (s *returnService) Create(input *CreateReturnInput) (*model.Return, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	var ret *model.Return
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.SaleItem
		if err := tx.First(&item, "id = ? AND sale_id = ?", input.SaleItemID, input.SaleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var sale model.Sale
		if err := tx.First(&sale, "id = ?", input.SaleID).Error; err != nil {
			return err
		}

		// Over-return guard against everything not cancelled so far
		returned, err := s.returnRepo.SumActiveQuantity(tx, item.ID)
		if err != nil {
			return err
		}
		if returned+input.Quantity > item.Quantity {
			return ErrOverReturn
		}

		now := time.Now()
		seq, err := s.seqRepo.Next(tx, "return", now)
		if err != nil {
			return err
		}

		ret = &model.Return{
			SaleID:       sale.ID,
			SaleItemID:   item.ID,
			CustomerID:   sale.CustomerID,
			VariantID:    item.VariantID,
			ProductName:  item.ProductName,
			Color:        item.Color,
			Size:         item.Size,
			ReturnNumber: fmt.Sprintf("R%s-%03d", now.Format("20060102"), seq),
			ReturnDate:   dateOnly(now),
			Quantity:     input.Quantity,
			UnitPrice:    input.UnitPrice,
			RefundAmount: int64(input.Quantity) * input.UnitPrice,
			Reason:       input.Reason,
			Memo:         input.Memo,
			Status:       model.ReturnPending,
		}
		return tx.Create(ret).Error
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) Complete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ret model.Return
		if err := tx.First(&ret, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if ret.Status != model.ReturnPending {
			return ErrAlreadyProcessed
		}

		if ret.VariantID != nil {
			if _, _, err := s.ledger.Adjust(tx, *ret.VariantID, ret.Quantity, model.StockChangeReturn, &ret.SaleID, "return "+ret.ReturnNumber); err != nil {
				return err
			}
		}

		// The refund only reduces the balance when the originating sale
		// actually carried credit; a fully paid sale is refunded in cash.
		var sale model.Sale
		if err := tx.First(&sale, "id = ?", ret.SaleID).Error; err != nil {
			return err
		}
		if sale.CreditAmount > 0 && ret.CustomerID != nil {
			if err := s.credit.Apply(tx, *ret.CustomerID, -ret.RefundAmount, "return "+ret.ReturnNumber); err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&model.Return{}).Where("id = ?", ret.ID).Updates(map[string]interface{}{
			"status":       model.ReturnCompleted,
			"completed_at": &now,
		}).Error
	})
}

func (s *returnService) Cancel(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ret model.Return
		if err := tx.First(&ret, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if ret.Status != model.ReturnPending {
			return ErrAlreadyProcessed
		}
		// Never applied, so nothing to reverse
		return tx.Model(&model.Return{}).Where("id = ?", ret.ID).Update("status", model.ReturnCancelled).Error
	})
}

func (s *returnService) List(opts repository.ReturnListOptions) ([]model.Return, error) {
	return s.returnRepo.FindAll(opts)
}
