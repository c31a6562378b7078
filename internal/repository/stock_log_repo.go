package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLogRepository interface {
	// Create inserts a ledger entry inside the caller's transaction so the
	// entry commits or rolls back together with the stock change it records.
	Create(tx *gorm.DB, entry *model.StockLog) error
	FindByVariant(variantID uuid.UUID) ([]model.StockLog, error)
	FindRecent(limit int) ([]model.StockLog, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) Create(tx *gorm.DB, entry *model.StockLog) error {
	return tx.Create(entry).Error
}

func (r *stockLogRepo) FindByVariant(variantID uuid.UUID) ([]model.StockLog, error) {
	var entries []model.StockLog
	err := r.db.Where("variant_id = ?", variantID).Order("created_at ASC, id ASC").Find(&entries).Error
	return entries, err
}

func (r *stockLogRepo) FindRecent(limit int) ([]model.StockLog, error) {
	var entries []model.StockLog
	err := r.db.Preload("Variant").Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
