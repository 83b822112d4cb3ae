package models

import (
	"time"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"
)

// Payment is one entry in an order's ledger. Entries are append-only:
// there is no edit or delete operation.
type Payment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	OrderID  uint      `json:"order_id" gorm:"not null;index"`
	Order    Order     `json:"-" gorm:"foreignKey:OrderID"`
	Amount   float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method   string    `json:"method" gorm:"type:varchar(10);not null;default:'cash'"`
	PaidAt   time.Time `json:"paid_at" gorm:"not null"`
	PaidByID uint      `json:"paid_by_id"`
	// Staff member who recorded the payment
	PaidBy    User      `json:"paid_by" gorm:"foreignKey:PaidByID"`
	CreatedAt time.Time `json:"created_at"`
}
