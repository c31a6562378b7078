package model

import (
	"time"

	"github.com/google/uuid"
)

type BackorderStatus string

const (
	BackorderPending   BackorderStatus = "pending"
	BackorderCompleted BackorderStatus = "completed"
	BackorderCancelled BackorderStatus = "cancelled"
)

// Backorder is the unfulfilled remainder of a sale line. No stock is
// deducted while it is pending; completion decrements stock exactly like a
// sale. SaleItemID is nil when the whole line was backordered (no fulfilled
// sale item exists for it).
type Backorder struct {
	BaseModel
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Sale        *Sale           `json:"sale,omitempty"`
	SaleItemID  *uuid.UUID      `gorm:"type:uuid" json:"sale_item_id,omitempty"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer       `json:"customer,omitempty"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant     *ProductVariant `json:"variant,omitempty"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Color       string          `gorm:"type:varchar(50)" json:"color"`
	Size        string          `gorm:"type:varchar(50)" json:"size"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Status      BackorderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Memo        string          `json:"memo"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
