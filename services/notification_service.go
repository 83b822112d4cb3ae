package services

import (
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/utils"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifyOrderEvent writes a notification row for an order lifecycle event.
// Delivery (push, websocket) is someone else's problem; we only persist.
func (ns *NotificationService) NotifyOrderEvent(order *models.Order, title, message string) {
	notif := models.Notification{
		UserID:  &order.UserID,
		OrderID: &order.ID,
		Title:   &title,
		Message: message,
	}
	if err := ns.db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("failed to write notification for order #%d: %v", order.ID, err)
		return
	}
	utils.InfoLogger.Printf("Notification created: %s", message)
}
