package models

import (
	"time"
)

// Order status codes. An order only moves forward along the transition
// graph in services.OrderService; Completed and Cancelled are terminal.
const (
	OrderStatusNew           = 0
	OrderStatusAdminAccepted = 1
	OrderStatusTransit       = 2
	OrderStatusDelivered     = 3
	OrderStatusCompleted     = 4
	OrderStatusCancelled     = 5
)

// Payment status of an order, derived from the payment ledger.
const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
)

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

const (
	OrderSourceApp     = "app"
	OrderSourcePhone   = "phone"
	OrderSourceInStore = "in_store"
)

type Order struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	OrderNumber int  `gorm:"not null;index" json:"order_number"`

	UserID   uint  `gorm:"not null;index" json:"user_id"`
	User     User  `gorm:"foreignKey:UserID" json:"user"`
	DriverID *uint `gorm:"index" json:"driver_id,omitempty"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	Status int    `gorm:"not null;default:0;index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CartItems []CartItem `gorm:"foreignKey:OrderID" json:"cart_items"`

	TaxPrice        float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax_price"`
	ShippingPrice   float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"shipping_price"`
	TotalOrderPrice float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_order_price"`

	DeliveryType      string `gorm:"type:varchar(20);not null;default:'delivery'" json:"delivery_type"`
	OrderSource       string `gorm:"type:varchar(20);not null;default:'app'" json:"order_source"`
	PaymentMethodType string `gorm:"type:varchar(10);not null;default:'cash'" json:"payment_method_type"`

	// IsDeferred marks an order that may be fulfilled before it is fully
	// paid; PaymentStatus then tracks the running sum of Payments.
	IsDeferred    bool      `gorm:"not null;default:false" json:"is_deferred"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Payments      []Payment `gorm:"foreignKey:OrderID" json:"payments"`

	ShippingAddressID *uint        `json:"shipping_address_id,omitempty"`
	ShippingAddress   *UserAddress `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`

	// Store branch this order belongs to; admins and drivers only see
	// orders within their own store scope.
	NearbyStoreAddressID *uint         `gorm:"index" json:"nearby_store_address_id,omitempty"`
	NearbyStoreAddress   *StoreAddress `gorm:"foreignKey:NearbyStoreAddressID" json:"nearby_store_address,omitempty"`

	// Contact fields for phone / in-store orders entered by staff.
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string `gorm:"type:varchar(30)" json:"customer_phone,omitempty"`

	AdminAcceptedAt   *time.Time `json:"admin_accepted_at,omitempty"`
	AdminCompletedAt  *time.Time `json:"admin_completed_at,omitempty"`
	DriverAcceptedAt  *time.Time `json:"driver_accepted_at,omitempty"`
	DriverDeliveredAt *time.Time `json:"driver_delivered_at,omitempty"`
	CanceledAt        *time.Time `json:"canceled_at,omitempty"`

	CanceledByDrivers []CanceledDriver `gorm:"foreignKey:OrderID" json:"canceled_by_drivers"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TotalPaid sums the payment ledger. Payments must be loaded.
func (o *Order) TotalPaid() float64 {
	var total float64
	for _, p := range o.Payments {
		total += p.Amount
	}
	return total
}

// RemainingBalance is what is still owed on a deferred order.
func (o *Order) RemainingBalance() float64 {
	return o.TotalOrderPrice - o.TotalPaid()
}

// IsTerminalStatus reports whether no further transition is permitted.
func IsTerminalStatus(status int) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// CanceledDriver records a driver who declined or cancelled an order, so
// the order is never re-offered to them. One row per (order, driver).
type CanceledDriver struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex:idx_order_driver" json:"order_id"`
	DriverID  uint      `gorm:"not null;uniqueIndex:idx_order_driver" json:"driver_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
