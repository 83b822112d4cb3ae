package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/services"
	"github.com/hossamfarhan/patisserie-app/utils"
)

type OrderController struct {
	DB            *gorm.DB
	orders        *services.OrderService
	notifications *services.NotificationService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:            db,
		orders:        services.NewOrderService(db),
		notifications: services.NewNotificationService(db),
	}
}

// actorID pulls the authenticated user id set by the auth middleware.
func actorID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func actorRole(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// actorStoreID resolves the store scope of an admin/driver actor through
// the shared handle.
func actorStoreID(c *gin.Context) *uint {
	var user models.User
	if err := utils.GetDB().First(&user, actorID(c)).Error; err != nil {
		return nil
	}
	return user.StoreAddressID
}

// CreateOrder -> checkout for customers; admins use it for phone and
// walk-in orders entered manually.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		Items             []services.CartItemInput `json:"items" binding:"required"`
		Notes             string                   `json:"notes"`
		ShippingAddressID *uint                    `json:"shipping_address_id"`
		StoreAddressID    *uint                    `json:"store_address_id"`
		CustomerName      string                   `json:"customer_name"`
		CustomerPhone     string                   `json:"customer_phone"`
		DeliveryType      string                   `json:"delivery_type"`
		OrderSource       string                   `json:"order_source"`
		PaymentMethodType string                   `json:"payment_method_type"`
		IsDeferred        bool                     `json:"is_deferred"`
		TaxPrice          float64                  `json:"tax_price"`
		ShippingPrice     float64                  `json:"shipping_price"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := actorRole(c)
	if role == models.RoleUser {
		// Customers order through the app for themselves.
		body.OrderSource = models.OrderSourceApp
		if body.DeliveryType != models.DeliveryTypePickup && body.ShippingAddressID == nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("%w: shipping address required", utils.ErrValidation))
			return
		}
	}

	order, err := oc.orders.CreateOrder(services.CreateOrderInput{
		UserID:               actorID(c),
		Items:                body.Items,
		Notes:                body.Notes,
		ShippingAddressID:    body.ShippingAddressID,
		NearbyStoreAddressID: body.StoreAddressID,
		CustomerName:         body.CustomerName,
		CustomerPhone:        body.CustomerPhone,
		DeliveryType:         body.DeliveryType,
		OrderSource:          body.OrderSource,
		PaymentMethodType:    body.PaymentMethodType,
		IsDeferred:           body.IsDeferred,
		TaxPrice:             body.TaxPrice,
		ShippingPrice:        body.ShippingPrice,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	oc.notifications.NotifyOrderEvent(order, "Order placed",
		fmt.Sprintf("Order #%d placed, total %s", order.OrderNumber, utils.FormatCurrency(order.TotalOrderPrice)))

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> admin listing scoped to the admin's store branch, with
// an optional ?status= filter.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("CartItems.Product").Preload("User").Preload("Payments")

	if storeID := actorStoreID(c); storeID != nil {
		query = query.Where("nearby_store_address_id = ?", *storeID)
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := strconv.Atoi(statusStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetUserOrders -> the customer's own orders; ?scope=pending returns the
// in-flight ones, anything else the finished ones.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	statuses := []int{models.OrderStatusCompleted, models.OrderStatusCancelled}
	if c.Query("scope") == "pending" {
		statuses = []int{
			models.OrderStatusNew,
			models.OrderStatusAdminAccepted,
			models.OrderStatusTransit,
			models.OrderStatusDelivered,
		}
	}

	var orders []models.Order
	if err := oc.DB.Preload("CartItems.Product").Preload("Payments").
		Where("user_id = ? AND status IN ?", actorID(c), statuses).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> full order read model.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.orders.GetOrder(uint(id))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	// Customers may only read their own orders.
	if actorRole(c) == models.RoleUser && order.UserID != actorID(c) {
		utils.RespondError(c, http.StatusForbidden, utils.ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ApproveOrder -> admin accepts a new order.
func (oc *OrderController) ApproveOrder(c *gin.Context) {
	oc.transition(c, models.OrderStatusAdminAccepted, "Order approved", "your order has been accepted")
}

// TransitOrder -> admin marks the order handed to delivery.
func (oc *OrderController) TransitOrder(c *gin.Context) {
	oc.transition(c, models.OrderStatusTransit, "Order in transit", "your order is on its way")
}

// CompleteOrder -> administrative closing after delivery and payment
// reconciliation.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	oc.transition(c, models.OrderStatusCompleted, "Order completed", "your order is complete")
}

func (oc *OrderController) transition(c *gin.Context, target int, message, notifText string) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.orders.ApplyStatusChange(uint(id), target, actorRole(c), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	oc.notifications.NotifyOrderEvent(order, message,
		fmt.Sprintf("Order #%d: %s", order.OrderNumber, notifText))

	utils.RespondJSON(c, http.StatusOK, message, order)
}

// CancelOrder -> customer, driver or admin cancels a non-terminal order.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.orders.CancelOrder(uint(id), actorRole(c), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	oc.notifications.NotifyOrderEvent(order, "Order cancelled",
		fmt.Sprintf("Order #%d has been cancelled", order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
