package model

import "github.com/google/uuid"

type StockChangeType string

const (
	StockChangeSale       StockChangeType = "sale"
	StockChangeCancel     StockChangeType = "cancel"
	StockChangeReturn     StockChangeType = "return"
	StockChangeIncoming   StockChangeType = "incoming"
	StockChangeAdjustment StockChangeType = "adjustment"
)

// StockLog is the append-only stock ledger entry. Rows are created together
// with the variant stock update in the same transaction and are never
// mutated or deleted; replaying a variant's entries in creation order must
// reproduce its current stock.
type StockLog struct {
	BaseModel
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant     *ProductVariant `json:"variant,omitempty"`
	ChangeType  StockChangeType `gorm:"type:varchar(20);not null" json:"change_type"`
	Quantity    int             `gorm:"not null" json:"quantity"` // signed delta
	BeforeStock int             `gorm:"not null" json:"before_stock"`
	AfterStock  int             `gorm:"not null" json:"after_stock"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid" json:"reference_id,omitempty"` // causing sale/return/sample
	Memo        string          `json:"memo"`
}
