package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditService is the single mutation entry point for customer balances.
// Positive delta = the customer owes more, negative = owes less. No floor
// or ceiling is enforced.
type CreditService interface {
	Apply(tx *gorm.DB, customerID uuid.UUID, delta int64, reason string) error
	Balance(customerID uuid.UUID) (int64, error)
	CustomersWithBalance() ([]model.Customer, error)
}

type creditService struct {
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCreditService(cRepo repository.CustomerRepository, db *gorm.DB, hub *ws.Hub) CreditService {
	return &creditService{
		customerRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *creditService) Apply(tx *gorm.DB, customerID uuid.UUID, delta int64, reason string) error {
	if err := s.customerRepo.AddBalance(tx, customerID, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	go s.wsHub.Publish("credit_update", map[string]interface{}{
		"customer_id": customerID,
		"delta":       delta,
		"reason":      reason,
	})

	return nil
}

func (s *creditService) Balance(customerID uuid.UUID) (int64, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return customer.Balance, nil
}

func (s *creditService) CustomersWithBalance() ([]model.Customer, error) {
	return s.customerRepo.WithBalance()
}
