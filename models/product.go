package models

import (
	"time"
)

type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Image          string    `gorm:"type:varchar(255)" json:"image"`
	RatingsAverage float64   `gorm:"type:decimal(3,2);default:0" json:"ratings_average"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
