package models

import (
	"time"
)

type UserAddress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Alias     string    `gorm:"type:varchar(50)" json:"alias"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
