package model

import (
	"time"

	"github.com/google/uuid"
)

type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnCompleted ReturnStatus = "completed"
	ReturnCancelled ReturnStatus = "cancelled"
)

// Return gives back previously sold quantity. The sum of quantities of all
// non-cancelled returns against one sale item never exceeds that item's
// sold quantity. Ledger effects happen at completion only; a cancelled
// return was never applied.
type Return struct {
	BaseModel
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Sale         *Sale           `json:"sale,omitempty"`
	SaleItemID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_item_id"`
	CustomerID   *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer     *Customer       `json:"customer,omitempty"`
	VariantID    *uuid.UUID      `gorm:"type:uuid" json:"variant_id,omitempty"`
	Variant      *ProductVariant `json:"variant,omitempty"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Color        string          `gorm:"type:varchar(50)" json:"color"`
	Size         string          `gorm:"type:varchar(50)" json:"size"`
	ReturnNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"return_number"`
	ReturnDate   time.Time       `gorm:"type:date" json:"return_date"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    int64           `gorm:"not null" json:"unit_price"`
	RefundAmount int64           `gorm:"not null" json:"refund_amount"`
	Reason       string          `json:"reason"`
	Memo         string          `json:"memo"`
	Status       ReturnStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}
