package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the shop owner account. The backend is single-operator; there is
// no role matrix, just one authenticated owner per shop.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	ShopName     string `gorm:"type:varchar(255);not null" json:"shop_name" validate:"required"`
	OwnerName    string `gorm:"type:varchar(255)" json:"owner_name"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	ShopName  string    `json:"shop_name"`
	OwnerName string    `json:"owner_name"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		ShopName:  u.ShopName,
		OwnerName: u.OwnerName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
	}
}
