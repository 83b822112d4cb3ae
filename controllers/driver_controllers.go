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

type DriverController struct {
	DB            *gorm.DB
	orders        *services.OrderService
	notifications *services.NotificationService
}

func NewDriverController(db *gorm.DB) *DriverController {
	return &DriverController{
		DB:            db,
		orders:        services.NewOrderService(db),
		notifications: services.NewNotificationService(db),
	}
}

// GetAvailableOrders -> in-transit, unassigned orders in the driver's
// store scope, excluding orders this driver has declined before.
func (dc *DriverController) GetAvailableOrders(c *gin.Context) {
	driverID := actorID(c)

	query := dc.DB.Preload("CartItems.Product").Preload("ShippingAddress").
		Where("status = ? AND driver_id IS NULL", models.OrderStatusTransit).
		Where("id NOT IN (?)",
			dc.DB.Model(&models.CanceledDriver{}).Select("order_id").Where("driver_id = ?", driverID))

	if storeID := actorStoreID(c); storeID != nil {
		query = query.Where("nearby_store_address_id = ?", *storeID)
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available orders", orders)
}

// GetMyDeliveries -> orders currently assigned to this driver.
func (dc *DriverController) GetMyDeliveries(c *gin.Context) {
	var orders []models.Order
	if err := dc.DB.Preload("CartItems.Product").Preload("ShippingAddress").
		Where("driver_id = ?", actorID(c)).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My deliveries", orders)
}

// AcceptOrder -> driver takes an offered order. This is an assignment,
// not a status change; the order stays in transit.
func (dc *DriverController) AcceptOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.orders.AcceptOrder(uint(id), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	dc.notifications.NotifyOrderEvent(order, "Driver assigned",
		fmt.Sprintf("A driver picked up order #%d", order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Order accepted", order)
}

// DeliverOrder -> the assigned driver confirms delivery.
func (dc *DriverController) DeliverOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.orders.ApplyStatusChange(uint(id), models.OrderStatusDelivered, actorRole(c), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	dc.notifications.NotifyOrderEvent(order, "Order delivered",
		fmt.Sprintf("Order #%d has been delivered", order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Order delivered", order)
}

// DeclineOrder -> driver turns the offer down; the order remains
// available to other drivers but is never re-offered to this one.
func (dc *DriverController) DeclineOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.orders.DeclineOrder(uint(id), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order declined", order)
}

// CancelOrder -> driver cancels the order outright (terminal); the driver
// is recorded in canceled_by_drivers.
func (dc *DriverController) CancelOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.orders.CancelOrder(uint(id), actorRole(c), actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	dc.notifications.NotifyOrderEvent(order, "Order cancelled",
		fmt.Sprintf("Order #%d was cancelled by the driver", order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
