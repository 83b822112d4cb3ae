package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/utils"
)

// orderTransitions is the closed transition graph. Cancellation is listed
// per state rather than wildcarded so a terminal order can never move.
var orderTransitions = map[int][]int{
	models.OrderStatusNew:           {models.OrderStatusAdminAccepted, models.OrderStatusCancelled},
	models.OrderStatusAdminAccepted: {models.OrderStatusTransit, models.OrderStatusCancelled},
	models.OrderStatusTransit:       {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

// transitionRole maps a target status to the role allowed to trigger it.
// Only an admin moves an order to Transit; a driver accepting an order is
// an assignment event, not a status change.
var transitionRole = map[int]string{
	models.OrderStatusAdminAccepted: models.RoleAdmin,
	models.OrderStatusTransit:       models.RoleAdmin,
	models.OrderStatusDelivered:     models.RoleDelivery,
	models.OrderStatusCompleted:     models.RoleAdmin,
}

func canTransition(from, to int) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService owns the order lifecycle: creation, status transitions,
// cancellation and driver assignment.
type OrderService struct {
	db       *gorm.DB
	counters *CounterService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:       db,
		counters: NewCounterService(db),
	}
}

type CartItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	UserID               uint
	Items                []CartItemInput
	Notes                string
	ShippingAddressID    *uint
	NearbyStoreAddressID *uint
	CustomerName         string
	CustomerPhone        string
	DeliveryType         string
	OrderSource          string
	PaymentMethodType    string
	IsDeferred           bool
	TaxPrice             float64
	ShippingPrice        float64
}

// CreateOrder validates the cart, prices it against the catalog, takes the
// next daily order number and persists the order in state New.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart items required", utils.ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", utils.ErrValidation)
		}
	}

	if in.OrderSource == "" {
		in.OrderSource = models.OrderSourceApp
	}
	if in.DeliveryType == "" {
		in.DeliveryType = models.DeliveryTypeDelivery
	}
	if in.PaymentMethodType == "" {
		in.PaymentMethodType = "cash"
	}

	// Walk-in orders carry no tax or shipping.
	if in.OrderSource == models.OrderSourceInStore {
		in.TaxPrice = 0
		in.ShippingPrice = 0
	}

	cartItems := make([]models.CartItem, 0, len(in.Items))
	var itemsTotal float64
	for _, item := range in.Items {
		var product models.Product
		if err := s.db.First(&product, item.ProductID).Error; err != nil {
			return nil, fmt.Errorf("%w: product %d", utils.ErrProductNotFound, item.ProductID)
		}
		lineTotal := float64(item.Quantity) * product.Price
		itemsTotal += lineTotal
		cartItems = append(cartItems, models.CartItem{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			Price:          product.Price,
			TotalItemPrice: lineTotal,
		})
	}

	total := itemsTotal + in.TaxPrice + in.ShippingPrice
	if total < 0 {
		return nil, fmt.Errorf("%w: total order price is negative", utils.ErrValidation)
	}

	orderNumber, err := s.counters.Next(DailyOrderCounter)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderNumber:          int(orderNumber),
		UserID:               in.UserID,
		Status:               models.OrderStatusNew,
		Notes:                in.Notes,
		CartItems:            cartItems,
		TaxPrice:             in.TaxPrice,
		ShippingPrice:        in.ShippingPrice,
		TotalOrderPrice:      total,
		DeliveryType:         in.DeliveryType,
		OrderSource:          in.OrderSource,
		PaymentMethodType:    in.PaymentMethodType,
		IsDeferred:           in.IsDeferred,
		ShippingAddressID:    in.ShippingAddressID,
		NearbyStoreAddressID: in.NearbyStoreAddressID,
		CustomerName:         in.CustomerName,
		CustomerPhone:        in.CustomerPhone,
	}
	RecomputePaymentStatus(&order)

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d created (daily number %d, total %s, payment=%s)",
		order.ID, order.OrderNumber, utils.FormatCurrency(order.TotalOrderPrice), order.PaymentStatus)

	return &order, nil
}

// ApplyStatusChange moves an order to targetStatus, stamping the matching
// lifecycle timestamp. Illegal jumps fail with invalidTransition no matter
// which route reached us; the role gate is re-asserted here as well.
func (s *OrderService) ApplyStatusChange(orderID uint, targetStatus int, actorRole string, actorID uint) (*models.Order, error) {
	if required, ok := transitionRole[targetStatus]; !ok {
		return nil, fmt.Errorf("%w: unknown status %d", utils.ErrValidation, targetStatus)
	} else if actorRole != required {
		return nil, utils.ErrNoPermission
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Write-lock the row so concurrent transitions serialize.
		res := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			UpdateColumn("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrOrderNotFound
		}

		if err := tx.Preload("Payments").First(&order, orderID).Error; err != nil {
			return err
		}

		if models.IsTerminalStatus(order.Status) {
			return utils.ErrAlreadyTerminal
		}
		if !canTransition(order.Status, targetStatus) {
			return fmt.Errorf("%w: %d -> %d", utils.ErrInvalidTransition, order.Status, targetStatus)
		}

		// A delivery confirmation must come from the assigned driver.
		if targetStatus == models.OrderStatusDelivered {
			if order.DriverID == nil || *order.DriverID != actorID {
				return utils.ErrNoPermission
			}
		}

		now := time.Now()
		order.Status = targetStatus
		switch targetStatus {
		case models.OrderStatusAdminAccepted:
			order.AdminAcceptedAt = &now
		case models.OrderStatusTransit:
			order.AdminCompletedAt = &now
		case models.OrderStatusDelivered:
			order.DriverDeliveredAt = &now
		case models.OrderStatusCompleted:
			// admin_completed_at tracks the latest admin action, so the
			// closing stamp overwrites the one taken at the transit step.
			order.AdminCompletedAt = &now
		}

		RecomputePaymentStatus(&order)
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":              order.Status,
				"payment_status":      order.PaymentStatus,
				"admin_accepted_at":   order.AdminAcceptedAt,
				"admin_completed_at":  order.AdminCompletedAt,
				"driver_delivered_at": order.DriverDeliveredAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d moved to status %d by %s", order.ID, order.Status, actorRole)
	return &order, nil
}

// CancelOrder is reachable from any non-terminal state. A driver actor is
// recorded in canceled_by_drivers (idempotently) so the order is never
// offered to them again; recorded payments stay on the order for manual
// reconciliation.
func (s *OrderService) CancelOrder(orderID uint, actorRole string, actorID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			UpdateColumn("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrOrderNotFound
		}

		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		if models.IsTerminalStatus(order.Status) {
			return utils.ErrAlreadyTerminal
		}

		// A customer may only cancel their own order.
		if actorRole == models.RoleUser && order.UserID != actorID {
			return utils.ErrNoPermission
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":      models.OrderStatusCancelled,
			"canceled_at": now,
		}
		if actorRole == models.RoleDelivery {
			if err := appendCanceledDriver(tx, order.ID, actorID); err != nil {
				return err
			}
			if order.DriverID != nil && *order.DriverID == actorID {
				updates["driver_id"] = nil
				updates["driver_accepted_at"] = nil
			}
		}

		order.Status = models.OrderStatusCancelled
		order.CanceledAt = &now
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d cancelled by %s", order.ID, actorRole)
	return &order, nil
}

// AcceptOrder assigns a driver to an order already marked in transit.
// It stamps driver_accepted_at but never touches status.
func (s *OrderService) AcceptOrder(orderID, driverID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			UpdateColumn("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrOrderNotFound
		}

		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		if order.Status != models.OrderStatusTransit {
			return fmt.Errorf("%w: order not in transit", utils.ErrInvalidTransition)
		}
		if order.DriverID != nil && *order.DriverID != driverID {
			return fmt.Errorf("%w: order already assigned", utils.ErrValidation)
		}

		now := time.Now()
		order.DriverID = &driverID
		order.DriverAcceptedAt = &now
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"driver_id":          driverID,
			"driver_accepted_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d accepted by driver %d", order.ID, driverID)
	return &order, nil
}

// DeclineOrder records that a driver turned the offer down without
// cancelling the order; it stays available to every other driver. If the
// declining driver had already accepted, the assignment is released.
func (s *OrderService) DeclineOrder(orderID, driverID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return utils.ErrOrderNotFound
		}
		if models.IsTerminalStatus(order.Status) {
			return utils.ErrAlreadyTerminal
		}

		if err := appendCanceledDriver(tx, order.ID, driverID); err != nil {
			return err
		}

		if order.DriverID != nil && *order.DriverID == driverID {
			order.DriverID = nil
			order.DriverAcceptedAt = nil
			return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
				"driver_id":          nil,
				"driver_accepted_at": nil,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// appendCanceledDriver is idempotent: a driver already present is left as
// a single row.
func appendCanceledDriver(tx *gorm.DB, orderID, driverID uint) error {
	var row models.CanceledDriver
	return tx.Where(models.CanceledDriver{OrderID: orderID, DriverID: driverID}).
		FirstOrCreate(&row).Error
}

// GetOrder loads the order read model: customer, driver, cart products,
// addresses and the payment ledger with payer identities.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.
		Preload("User").
		Preload("Driver").
		Preload("CartItems.Product").
		Preload("Payments.PaidBy").
		Preload("ShippingAddress").
		Preload("NearbyStoreAddress").
		Preload("CanceledByDrivers").
		First(&order, orderID).Error; err != nil {
		return nil, utils.ErrOrderNotFound
	}
	return &order, nil
}
