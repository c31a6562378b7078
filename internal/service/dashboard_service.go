package service

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
)

// Thresholds for the notification feed. The feed itself is an external
// reader; this service only supplies the derived counts and lists.
const (
	lowStockThreshold    = 5
	overdueAfterDays     = 7
	longPendingAfterDays = 7
)

type NotificationCounts struct {
	OverdueCreditCount        int64 `json:"overdue_credit_count"`
	LongPendingBackorderCount int64 `json:"long_pending_backorder_count"`
	LowStockCount             int64 `json:"low_stock_count"`
	OutOfStockCount           int64 `json:"out_of_stock_count"`
	OverdueSampleCount        int64 `json:"overdue_sample_count"`
	TotalCount                int64 `json:"total_count"`
}

type DashboardService interface {
	NotificationCounts() (*NotificationCounts, error)
	LowStockVariants() ([]model.ProductVariant, error)
	OutOfStockVariants() ([]model.ProductVariant, error)
}

type dashboardService struct {
	customerRepo  repository.CustomerRepository
	backorderRepo repository.BackorderRepository
	productRepo   repository.ProductRepository
	sampleRepo    repository.SampleRepository
}

func NewDashboardService(cRepo repository.CustomerRepository, bRepo repository.BackorderRepository, pRepo repository.ProductRepository, sRepo repository.SampleRepository) DashboardService {
	return &dashboardService{
		customerRepo:  cRepo,
		backorderRepo: bRepo,
		productRepo:   pRepo,
		sampleRepo:    sRepo,
	}
}

func (s *dashboardService) NotificationCounts() (*NotificationCounts, error) {
	now := time.Now()
	counts := &NotificationCounts{}

	overdueCredit, err := s.customerRepo.CountOverdueCredit(now.AddDate(0, 0, -overdueAfterDays))
	if err != nil {
		return nil, err
	}
	counts.OverdueCreditCount = overdueCredit

	longPending, err := s.backorderRepo.CountLongPending(now.AddDate(0, 0, -longPendingAfterDays))
	if err != nil {
		return nil, err
	}
	counts.LongPendingBackorderCount = longPending

	lowStock, err := s.productRepo.LowStockVariants(lowStockThreshold)
	if err != nil {
		return nil, err
	}
	counts.LowStockCount = int64(len(lowStock))

	outOfStock, err := s.productRepo.OutOfStockVariants()
	if err != nil {
		return nil, err
	}
	counts.OutOfStockCount = int64(len(outOfStock))

	overdueSamples, err := s.sampleRepo.CountOverdue(dateOnly(now))
	if err != nil {
		return nil, err
	}
	counts.OverdueSampleCount = overdueSamples

	counts.TotalCount = counts.OverdueCreditCount + counts.LongPendingBackorderCount +
		counts.LowStockCount + counts.OutOfStockCount + counts.OverdueSampleCount
	return counts, nil
}

func (s *dashboardService) LowStockVariants() ([]model.ProductVariant, error) {
	return s.productRepo.LowStockVariants(lowStockThreshold)
}

func (s *dashboardService) OutOfStockVariants() ([]model.ProductVariant, error) {
	return s.productRepo.OutOfStockVariants()
}
