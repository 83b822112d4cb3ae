package models

import (
	"time"
)

type CartItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order          Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID      uint      `gorm:"not null" json:"product_id"`
	Product        Product   `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalItemPrice float64   `gorm:"type:decimal(10,2);not null" json:"total_item_price"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
