package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/utils"
)

// PaymentService is the append-only payment ledger of an order. It owns
// the derivation of Order.PaymentStatus; every mutation path that touches
// payments must go through RecomputePaymentStatus.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RecomputePaymentStatus derives the payment status from the running sum.
// Non-deferred orders are due in full at checkout, so they are paid
// unconditionally regardless of recorded entries.
func RecomputePaymentStatus(order *models.Order) {
	if !order.IsDeferred {
		order.PaymentStatus = models.PaymentStatusPaid
		return
	}

	totalPaid := order.TotalPaid()
	switch {
	case totalPaid == 0:
		order.PaymentStatus = models.PaymentStatusUnpaid
	case totalPaid < order.TotalOrderPrice:
		order.PaymentStatus = models.PaymentStatusPartiallyPaid
	default:
		order.PaymentStatus = models.PaymentStatusPaid
	}
}

// AddPayment appends a ledger entry and refreshes the order's payment
// status. The balance check and the append run in one transaction that
// first write-locks the order row, so two concurrent payments cannot both
// pass the check against a stale balance.
func (s *PaymentService) AddPayment(orderID uint, amount float64, method string, recordedBy uint) (*models.Order, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}

	if method == "" {
		method = models.PaymentMethodCash
	}
	switch method {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodWallet:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", utils.ErrValidation, method)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Touch the order row first to take its write lock; concurrent
		// AddPayment calls serialize here.
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

		remaining := order.RemainingBalance()
		if amount > remaining {
			return utils.ErrAmountExceedsRemaining
		}

		payment := models.Payment{
			OrderID:  order.ID,
			Amount:   amount,
			Method:   method,
			PaidAt:   time.Now(),
			PaidByID: recordedBy,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.Payments = append(order.Payments, payment)

		RecomputePaymentStatus(&order)
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			UpdateColumn("payment_status", order.PaymentStatus).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Payment of %s recorded on order #%d (status=%s)",
		utils.FormatCurrency(amount), order.ID, order.PaymentStatus)

	return &order, nil
}

// GetOrderPayments returns the ledger with payer identities resolved.
func (s *PaymentService) GetOrderPayments(orderID uint) ([]models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, utils.ErrOrderNotFound
	}

	var payments []models.Payment
	if err := s.db.Preload("PaidBy").
		Where("order_id = ?", orderID).
		Order("paid_at asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
