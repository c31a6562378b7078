package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Code      string `gorm:"type:varchar(50);index" json:"code"`
	Name      string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  string `gorm:"type:varchar(100)" json:"category"`
	CostPrice int64  `gorm:"default:0" json:"cost_price"`
	SalePrice int64  `gorm:"default:0" json:"sale_price"`
	Memo      string `json:"memo"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is the unit stock is tracked at: one color/size
// combination of a product. The Stock column is only ever written through
// the stock ledger so every change is paired with a StockLog entry.
type ProductVariant struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_combo" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Color     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_variant_combo" json:"color" validate:"required"`
	Size      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_variant_combo" json:"size" validate:"required"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Barcode   string    `gorm:"type:varchar(100)" json:"barcode"`
	SKU       string    `gorm:"type:varchar(100)" json:"sku"`
}
