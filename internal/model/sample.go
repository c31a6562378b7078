package model

import (
	"time"

	"github.com/google/uuid"
)

type SampleStatus string

const (
	SampleOut       SampleStatus = "out"
	SampleReturned  SampleStatus = "returned"
	SampleCancelled SampleStatus = "cancelled"
)

// Sample is stock lent out for non-sale purposes (photography etc.).
// If DeductStock is true exactly one compensating restoration happens on
// return or cancel; if false the loan never touches the stock ledger.
type Sample struct {
	BaseModel
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer       `json:"customer,omitempty"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant     *ProductVariant `json:"variant,omitempty"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Color       string          `gorm:"type:varchar(50)" json:"color"`
	Size        string          `gorm:"type:varchar(50)" json:"size"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	ReturnDue   time.Time       `gorm:"type:date" json:"return_due"`
	DeductStock bool            `gorm:"not null;default:false" json:"deduct_stock"`
	Status      SampleStatus    `gorm:"type:varchar(20);not null;default:'out'" json:"status"`
	Memo        string          `json:"memo"`
	ReturnedAt  *time.Time      `json:"returned_at,omitempty"`
}
