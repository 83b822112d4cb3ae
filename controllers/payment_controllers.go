package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/services"
	"github.com/hossamfarhan/patisserie-app/utils"
)

type PaymentController struct {
	DB            *gorm.DB
	payments      *services.PaymentService
	notifications *services.NotificationService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:            db,
		payments:      services.NewPaymentService(db),
		notifications: services.NewNotificationService(db),
	}
}

// AddPayment -> staff records a deposit or installment on an order.
func (pc *PaymentController) AddPayment(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	type ReqBody struct {
		Amount float64 `json:"amount" binding:"required"`
		Method string  `json:"method"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.payments.AddPayment(uint(orderID), body.Amount, body.Method, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pc.notifications.NotifyOrderEvent(order, "Payment received",
		fmt.Sprintf("Payment of %s recorded on order #%d", utils.FormatCurrency(body.Amount), order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Payment added", order)
}

// GetOrderPayments -> the order's ledger with payer identities.
func (pc *PaymentController) GetOrderPayments(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	payments, err := pc.payments.GetOrderPayments(uint(orderID))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order payments", payments)
}
