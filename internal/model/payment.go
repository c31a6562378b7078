package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentRefund  PaymentType = "refund"
)

// Payment is immutable once created; corrections are new offsetting
// payments. Deposits reduce the customer's outstanding balance, refunds
// increase it.
type Payment struct {
	BaseModel
	CustomerID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer     `json:"customer,omitempty"`
	SaleID      *uuid.UUID    `gorm:"type:uuid" json:"sale_id,omitempty"`
	Type        PaymentType   `gorm:"type:varchar(10);not null" json:"type"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Method      PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	PaymentDate time.Time     `gorm:"type:date" json:"payment_date"`
	Memo        string        `json:"memo"`
}
