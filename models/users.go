package models

import "time"

// Roles understood by the API.
const (
	RoleUser     = "user"
	RoleDelivery = "delivery"
	RoleAdmin    = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Role     string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// Store branch an admin or driver is attached to
	StoreAddressID *uint         `gorm:"index" json:"store_address_id,omitempty"`
	StoreAddress   *StoreAddress `gorm:"foreignKey:StoreAddressID" json:"store_address,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
