package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	CreateVariant(variant *model.ProductVariant) error
	FindVariantByID(id uuid.UUID) (*model.ProductVariant, error)
	// AdjustStock applies delta to the variant's stock only if the result
	// stays >= 0. The condition is evaluated by the database in one UPDATE,
	// so it is the single point of mutual exclusion for stock. Returns
	// whether a row was changed.
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) (bool, error)
	VariantStock(tx *gorm.DB, id uuid.UUID) (int, error)
	LowStockVariants(threshold int) ([]model.ProductVariant, error)
	OutOfStockVariants() ([]model.ProductVariant, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Variants").Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variants").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) CreateVariant(variant *model.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *productRepo) FindVariantByID(id uuid.UUID) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.db.Preload("Product").First(&variant, "id = ?", id).Error
	return &variant, err
}

func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) (bool, error) {
	res := tx.Model(&model.ProductVariant{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) VariantStock(tx *gorm.DB, id uuid.UUID) (int, error) {
	var variant model.ProductVariant
	if err := tx.Select("id", "stock").First(&variant, "id = ?", id).Error; err != nil {
		return 0, err
	}
	return variant.Stock, nil
}

func (r *productRepo) LowStockVariants(threshold int) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Preload("Product").
		Where("stock > 0 AND stock <= ?", threshold).
		Order("stock ASC").
		Find(&variants).Error
	return variants, err
}

func (r *productRepo) OutOfStockVariants() ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Preload("Product").Where("stock = 0").Find(&variants).Error
	return variants, err
}
