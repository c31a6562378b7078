package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
	// AddBalance shifts the outstanding balance by delta inside the given
	// transaction. No floor is enforced; negative balances are customer
	// credit.
	AddBalance(tx *gorm.DB, id uuid.UUID, delta int64) error
	WithBalance() ([]model.Customer, error)
	// CountOverdueCredit counts customers still owing money whose credit
	// originated from a completed sale older than the cutoff.
	CountOverdueCredit(cutoff time.Time) (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepo) AddBalance(tx *gorm.DB, id uuid.UUID, delta int64) error {
	res := tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) WithBalance() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("balance > 0").Order("balance DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) CountOverdueCredit(cutoff time.Time) (int64, error) {
	var count int64
	creditSales := r.db.Model(&model.Sale{}).
		Select("customer_id").
		Where("credit_amount > 0 AND status = ? AND created_at < ?", model.SaleCompleted, cutoff)
	err := r.db.Model(&model.Customer{}).
		Where("balance > 0 AND id IN (?)", creditSales).
		Count(&count).Error
	return count, err
}
