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

type CreatePaymentInput struct {
	CustomerID uuid.UUID           `json:"customer_id" validate:"uuid_required"`
	SaleID     *uuid.UUID          `json:"sale_id"`
	Type       model.PaymentType   `json:"type" validate:"required,oneof=deposit refund"`
	Amount     int64               `json:"amount" validate:"required,gt=0"`
	Method     model.PaymentMethod `json:"method" validate:"required,oneof=cash card transfer credit mixed"`
	Memo       string              `json:"memo"`
}

// PaymentService records deposits and refunds against a customer's
// outstanding balance. Payments are immutable; corrections are new
// offsetting payments.
type PaymentService interface {
	Create(input *CreatePaymentInput) (*model.Payment, error)
	List(opts repository.PaymentListOptions) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	credit      CreditService
	db          *gorm.DB
}

func NewPaymentService(pRepo repository.PaymentRepository, credit CreditService, db *gorm.DB) PaymentService {
	return &paymentService{
		paymentRepo: pRepo,
		credit:      credit,
		db:          db,
	}
}

func (s *paymentService) Create(input *CreatePaymentInput) (*model.Payment, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	var payment *model.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		payment = &model.Payment{
			CustomerID:  input.CustomerID,
			SaleID:      input.SaleID,
			Type:        input.Type,
			Amount:      input.Amount,
			Method:      input.Method,
			PaymentDate: dateOnly(time.Now()),
			Memo:        input.Memo,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		delta := -input.Amount // deposit: the customer owes less
		if input.Type == model.PaymentRefund {
			delta = input.Amount
		}
		return s.credit.Apply(tx, input.CustomerID, delta, string(input.Type))
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) List(opts repository.PaymentListOptions) ([]model.Payment, error) {
	return s.paymentRepo.FindAll(opts)
}
