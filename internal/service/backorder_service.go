package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackorderService resolves pending backorders. A backorder leaves pending
// exactly once: completion decrements stock like a normal sale, cancellation
// has no ledger effect because nothing was deducted while pending.
type BackorderService interface {
	Complete(id uuid.UUID) error
	Cancel(id uuid.UUID) error
	List(status model.BackorderStatus, customerID *uuid.UUID) ([]model.Backorder, error)
	Stats() (*repository.BackorderStats, error)
}

type backorderService struct {
	backorderRepo repository.BackorderRepository
	ledger        LedgerService
	db            *gorm.DB
}

func NewBackorderService(bRepo repository.BackorderRepository, ledger LedgerService, db *gorm.DB) BackorderService {
	return &backorderService{
		backorderRepo: bRepo,
		ledger:        ledger,
		db:            db,
	}
}

func (s *backorderService) Complete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var backorder model.Backorder
		if err := tx.First(&backorder, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if backorder.Status != model.BackorderPending {
			return ErrAlreadyProcessed
		}

		// Same decrement kind as a sale; fails with ErrInsufficientStock and
		// rolls the whole workflow back when stock is still short.
		if _, _, err := s.ledger.Adjust(tx, backorder.VariantID, -backorder.Quantity, model.StockChangeSale, &backorder.SaleID, "backorder fulfilled"); err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&model.Backorder{}).Where("id = ?", backorder.ID).Updates(map[string]interface{}{
			"status":       model.BackorderCompleted,
			"completed_at": &now,
		}).Error
	})
}

func (s *backorderService) Cancel(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var backorder model.Backorder
		if err := tx.First(&backorder, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if backorder.Status != model.BackorderPending {
			return ErrAlreadyProcessed
		}
		return tx.Model(&model.Backorder{}).Where("id = ?", backorder.ID).Update("status", model.BackorderCancelled).Error
	})
}

func (s *backorderService) List(status model.BackorderStatus, customerID *uuid.UUID) ([]model.Backorder, error) {
	return s.backorderRepo.FindAll(status, customerID)
}

func (s *backorderService) Stats() (*repository.BackorderStats, error) {
	return s.backorderRepo.Stats()
}
