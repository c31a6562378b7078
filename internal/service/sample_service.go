package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSampleInput struct {
	CustomerID  uuid.UUID `json:"customer_id" validate:"uuid_required"`
	VariantID   uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	ReturnDue   time.Time `json:"return_due" validate:"required"`
	DeductStock bool      `json:"deduct_stock"`
	Memo        string    `json:"memo"`
}

// SampleService lends stock out for non-sale purposes. When DeductStock is
// set the lend decrements stock and the return or cancel restores exactly
// the same quantity; otherwise the loan never touches the ledger.
type SampleService interface {
	Create(input *CreateSampleInput) (*model.Sample, error)
	Return(id uuid.UUID) error
	Cancel(id uuid.UUID) error
	List(status model.SampleStatus, customerID *uuid.UUID) ([]model.Sample, error)
}

type sampleService struct {
	sampleRepo  repository.SampleRepository
	productRepo repository.ProductRepository
	ledger      LedgerService
	db          *gorm.DB
}

func NewSampleService(sRepo repository.SampleRepository, pRepo repository.ProductRepository, ledger LedgerService, db *gorm.DB) SampleService {
	return &sampleService{
		sampleRepo:  sRepo,
		productRepo: pRepo,
		ledger:      ledger,
		db:          db,
	}
}

func (s *sampleService) Create(input *CreateSampleInput) (*model.Sample, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	variant, err := s.productRepo.FindVariantByID(input.VariantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	productName := ""
	if variant.Product != nil {
		productName = variant.Product.Name
	}

	var sample *model.Sample
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if input.DeductStock {
			if _, _, err := s.ledger.Adjust(tx, input.VariantID, -input.Quantity, model.StockChangeAdjustment, nil, "sample lend"); err != nil {
				return err
			}
		}

		sample = &model.Sample{
			CustomerID:  input.CustomerID,
			VariantID:   input.VariantID,
			ProductName: productName,
			Color:       variant.Color,
			Size:        variant.Size,
			Quantity:    input.Quantity,
			ReturnDue:   dateOnly(input.ReturnDue),
			DeductStock: input.DeductStock,
			Status:      model.SampleOut,
			Memo:        input.Memo,
		}
		return tx.Create(sample).Error
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *sampleService) Return(id uuid.UUID) error {
	return s.resolve(id, model.SampleReturned, "sample returned")
}

func (s *sampleService) Cancel(id uuid.UUID) error {
	return s.resolve(id, model.SampleCancelled, "sample lend cancelled")
}

// resolve ends a loan either way; the stock restoration is identical for
// return and cancel, only the final status differs.
func (s *sampleService) resolve(id uuid.UUID, status model.SampleStatus, memo string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sample model.Sample
		if err := tx.First(&sample, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sample.Status != model.SampleOut {
			return ErrAlreadyProcessed
		}

		if sample.DeductStock {
			if _, _, err := s.ledger.Adjust(tx, sample.VariantID, sample.Quantity, model.StockChangeAdjustment, nil, memo); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"status": status}
		if status == model.SampleReturned {
			now := time.Now()
			updates["returned_at"] = &now
		}
		return tx.Model(&model.Sample{}).Where("id = ?", sample.ID).Updates(updates).Error
	})
}

func (s *sampleService) List(status model.SampleStatus, customerID *uuid.UUID) ([]model.Sample, error) {
	return s.sampleRepo.FindAll(status, customerID)
}
