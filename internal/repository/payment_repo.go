package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentListOptions struct {
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

type PaymentRepository interface {
	FindAll(opts PaymentListOptions) ([]model.Payment, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) FindAll(opts PaymentListOptions) ([]model.Payment, error) {
	query := r.db.Preload("Customer").Order("created_at DESC")
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.StartDate != nil {
		query = query.Where("payment_date >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("payment_date <= ?", *opts.EndDate)
	}
	var payments []model.Payment
	err := query.Find(&payments).Error
	return payments, err
}
