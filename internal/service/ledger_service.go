package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService is the single entry point for stock mutation. Every change
// goes through Adjust, which performs a conditional atomic update and
// writes the paired StockLog row in the same transaction; call sites never
// write the stock counter directly.
type LedgerService interface {
	// Adjust applies delta to the variant's stock inside the caller's
	// transaction. Fails with ErrInsufficientStock when the result would go
	// negative and ErrNotFound when the variant does not exist. Returns the
	// stock before and after the change.
	Adjust(tx *gorm.DB, variantID uuid.UUID, delta int, changeType model.StockChangeType, referenceID *uuid.UUID, memo string) (int, int, error)
	// AdjustStock is the standalone variant for manual corrections and
	// incoming stock; it wraps Adjust in its own transaction.
	AdjustStock(variantID uuid.UUID, delta int, changeType model.StockChangeType, memo string) (*model.StockLog, error)
	CurrentStock(variantID uuid.UUID) (int, error)
	History(variantID uuid.UUID) ([]model.StockLog, error)
}

type ledgerService struct {
	productRepo repository.ProductRepository
	logRepo     repository.StockLogRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, lRepo repository.StockLogRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo: pRepo,
		logRepo:     lRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *ledgerService) Adjust(tx *gorm.DB, variantID uuid.UUID, delta int, changeType model.StockChangeType, referenceID *uuid.UUID, memo string) (int, int, error) {
	// The WHERE clause carries the non-negativity check, so the database
	// decides the race: two concurrent decrements of the last unit cannot
	// both win.
	applied, err := s.productRepo.AdjustStock(tx, variantID, delta)
	if err != nil {
		return 0, 0, err
	}
	if !applied {
		if _, err := s.productRepo.VariantStock(tx, variantID); errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, ErrInsufficientStock
	}

	after, err := s.productRepo.VariantStock(tx, variantID)
	if err != nil {
		return 0, 0, err
	}
	before := after - delta

	entry := &model.StockLog{
		VariantID:   variantID,
		ChangeType:  changeType,
		Quantity:    delta,
		BeforeStock: before,
		AfterStock:  after,
		ReferenceID: referenceID,
		Memo:        memo,
	}
	if err := s.logRepo.Create(tx, entry); err != nil {
		return 0, 0, err
	}

	go s.wsHub.Publish("stock_update", map[string]interface{}{
		"variant_id":  variantID,
		"change_type": changeType,
		"quantity":    delta,
		"stock":       after,
	})

	return before, after, nil
}

func (s *ledgerService) AdjustStock(variantID uuid.UUID, delta int, changeType model.StockChangeType, memo string) (*model.StockLog, error) {
	if delta == 0 {
		return nil, errors.New("delta must be nonzero")
	}
	var entry *model.StockLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		before, after, err := s.Adjust(tx, variantID, delta, changeType, nil, memo)
		if err != nil {
			return err
		}
		entry = &model.StockLog{
			VariantID:   variantID,
			ChangeType:  changeType,
			Quantity:    delta,
			BeforeStock: before,
			AfterStock:  after,
			Memo:        memo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) CurrentStock(variantID uuid.UUID) (int, error) {
	stock, err := s.productRepo.VariantStock(s.db, variantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	return stock, err
}

func (s *ledgerService) History(variantID uuid.UUID) ([]model.StockLog, error) {
	return s.logRepo.FindByVariant(variantID)
}
