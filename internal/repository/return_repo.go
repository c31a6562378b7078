package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReturnListOptions struct {
	Status     model.ReturnStatus
	CustomerID *uuid.UUID
	SaleID     *uuid.UUID
}

type ReturnRepository interface {
	FindAll(opts ReturnListOptions) ([]model.Return, error)
	FindByID(id uuid.UUID) (*model.Return, error)
	// SumActiveQuantity totals the non-cancelled return quantity against one
	// sale item, read inside the caller's transaction so the over-return
	// check and the insert see the same state.
	SumActiveQuantity(tx *gorm.DB, saleItemID uuid.UUID) (int, error)
}

type returnRepo struct {
	db *gorm.DB
}

func NewReturnRepo(db *gorm.DB) ReturnRepository {
	return &returnRepo{db}
}

func (r *returnRepo) FindAll(opts ReturnListOptions) ([]model.Return, error) {
	query := r.db.Preload("Customer").Preload("Sale").Preload("Variant").Order("created_at DESC")
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.SaleID != nil {
		query = query.Where("sale_id = ?", *opts.SaleID)
	}
	var returns []model.Return
	err := query.Find(&returns).Error
	return returns, err
}

func (r *returnRepo) FindByID(id uuid.UUID) (*model.Return, error) {
	var ret model.Return
	err := r.db.First(&ret, "id = ?", id).Error
	return &ret, err
}

func (r *returnRepo) SumActiveQuantity(tx *gorm.DB, saleItemID uuid.UUID) (int, error) {
	var total int
	err := tx.Model(&model.Return{}).
		Where("sale_item_id = ? AND status <> ?", saleItemID, model.ReturnCancelled).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
