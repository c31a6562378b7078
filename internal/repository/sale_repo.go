package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleListOptions struct {
	Date       *time.Time
	CustomerID *uuid.UUID
}

type SaleRepository interface {
	FindAll(opts SaleListOptions) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindItemByID(id uuid.UUID) (*model.SaleItem, error)
	// TodayStats aggregates completed sales for one day.
	TodayStats(day time.Time) (*TodaySaleStats, error)
}

type TodaySaleStats struct {
	TotalSales  int64 `json:"total_sales"`
	TotalPaid   int64 `json:"total_paid"`
	TotalCredit int64 `json:"total_credit"`
	OrderCount  int64 `json:"order_count"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll(opts SaleListOptions) ([]model.Sale, error) {
	query := r.db.Preload("Items").Preload("Customer").Order("created_at DESC")
	if opts.Date != nil {
		query = query.Where("sale_date = ?", *opts.Date)
	}
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}
	var sales []model.Sale
	err := query.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Customer").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindItemByID(id uuid.UUID) (*model.SaleItem, error) {
	var item model.SaleItem
	err := r.db.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *saleRepo) TodayStats(day time.Time) (*TodaySaleStats, error) {
	var stats TodaySaleStats
	err := r.db.Model(&model.Sale{}).
		Where("sale_date = ? AND status = ?", day, model.SaleCompleted).
		Select("COALESCE(SUM(final_amount), 0) as total_sales, COALESCE(SUM(paid_amount), 0) as total_paid, COALESCE(SUM(credit_amount), 0) as total_credit, COUNT(*) as order_count").
		Scan(&stats).Error
	return &stats, err
}
