package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BackorderRepository interface {
	FindAll(status model.BackorderStatus, customerID *uuid.UUID) ([]model.Backorder, error)
	FindByID(id uuid.UUID) (*model.Backorder, error)
	Stats() (*BackorderStats, error)
	CountLongPending(olderThan time.Time) (int64, error)
}

type BackorderStats struct {
	PendingCount    int64 `json:"pending_count"`
	TotalQuantity   int64 `json:"total_quantity"`
	UniqueCustomers int64 `json:"unique_customers"`
}

type backorderRepo struct {
	db *gorm.DB
}

func NewBackorderRepo(db *gorm.DB) BackorderRepository {
	return &backorderRepo{db}
}

func (r *backorderRepo) FindAll(status model.BackorderStatus, customerID *uuid.UUID) ([]model.Backorder, error) {
	query := r.db.Preload("Customer").Preload("Sale").Preload("Variant").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var backorders []model.Backorder
	err := query.Find(&backorders).Error
	return backorders, err
}

func (r *backorderRepo) FindByID(id uuid.UUID) (*model.Backorder, error) {
	var backorder model.Backorder
	err := r.db.Preload("Variant").First(&backorder, "id = ?", id).Error
	return &backorder, err
}

func (r *backorderRepo) Stats() (*BackorderStats, error) {
	var stats BackorderStats

	pending := r.db.Model(&model.Backorder{}).Where("status = ?", model.BackorderPending)
	if err := pending.Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Backorder{}).
		Where("status = ?", model.BackorderPending).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.TotalQuantity).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Backorder{}).
		Where("status = ?", model.BackorderPending).
		Distinct("customer_id").
		Count(&stats.UniqueCustomers).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *backorderRepo) CountLongPending(olderThan time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Backorder{}).
		Where("status = ? AND created_at < ?", model.BackorderPending, olderThan).
		Count(&count).Error
	return count, err
}
