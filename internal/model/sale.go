package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
	PayCredit   PaymentMethod = "credit"
	PayMixed    PaymentMethod = "mixed"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// Sale is the committed header of a sale. TotalAmount is billed on the full
// requested quantity even when part of it is backordered; SaleItems hold
// only the fulfilled (shipped) quantities. Cancellation flips Status and
// reverses the stock/credit effects, the record itself is kept.
type Sale struct {
	BaseModel
	CustomerID     *uuid.UUID    `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer       *Customer     `json:"customer,omitempty"`
	SaleNumber     string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"sale_number"`
	SaleDate       time.Time     `gorm:"type:date;index" json:"sale_date"`
	TotalAmount    int64         `gorm:"not null;default:0" json:"total_amount"`
	DiscountAmount int64         `gorm:"not null;default:0" json:"discount_amount"`
	FinalAmount    int64         `gorm:"not null;default:0" json:"final_amount"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaidAmount     int64         `gorm:"not null;default:0" json:"paid_amount"`
	CreditAmount   int64         `gorm:"not null;default:0" json:"credit_amount"`
	Status         SaleStatus    `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Memo           string        `json:"memo"`

	Items []SaleItem `json:"items,omitempty"`
}

// SaleItem snapshots product name/color/size/price at sale time so the
// record stays accurate if the catalog changes later.
type SaleItem struct {
	BaseModel
	SaleID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id,omitempty"`
	VariantID   *uuid.UUID `gorm:"type:uuid;index" json:"variant_id,omitempty"`
	ProductName string     `gorm:"type:varchar(255);not null" json:"product_name"`
	Color       string     `gorm:"type:varchar(50)" json:"color"`
	Size        string     `gorm:"type:varchar(50)" json:"size"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	UnitPrice   int64      `gorm:"not null" json:"unit_price"`
	Amount      int64      `gorm:"not null" json:"amount"`
}
