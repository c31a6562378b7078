package model

// Customer is a wholesale buyer. Balance is the outstanding credit counter:
// positive means the customer owes the shop. There is no floor; a negative
// balance is credit held by the customer. Balance is only written through
// the credit account service.
type Customer struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`
	Address     string `json:"address"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Memo        string `json:"memo"`
	Balance     int64  `gorm:"not null;default:0" json:"balance"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
