package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/controllers"
	"github.com/hossamfarhan/patisserie-app/models"
)

func setupOrderRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)

	authed := router.Group("/", authAs(userID, role))
	authed.POST("/orders", orderCtrl.CreateOrder)
	authed.GET("/orders/user", orderCtrl.GetUserOrders)
	authed.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	authed.PUT("/orders/:order_id/cancelled", orderCtrl.CancelOrder)
	authed.PUT("/orders/:order_id/approved", orderCtrl.ApproveOrder)
	return router
}

func TestCreateAndGetOrder(t *testing.T) {
	db := setupTestDB(t)
	customer := seedTestUser(t, db, models.RoleUser)
	product := seedTestProduct(t, db, "Eclair", 10.0)
	router := setupOrderRouter(db, customer.ID, customer.Role)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 2},
		},
		"delivery_type": "pickup",
	}
	w := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	createResp := decodeResponse(t, w)
	assert.Equal(t, "Order created", createResp["message"])
	data := createResp["data"].(map[string]interface{})
	orderID := int(data["id"].(float64))
	assert.Equal(t, float64(models.OrderStatusNew), data["status"])
	assert.Equal(t, float64(20), data["total_order_price"])
	assert.GreaterOrEqual(t, data["order_number"].(float64), float64(1))
	assert.Equal(t, models.PaymentStatusPaid, data["payment_status"])

	w = doJSON(t, router, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	getResp := decodeResponse(t, w)
	assert.Equal(t, "Order detail", getResp["message"])
	getData := getResp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), getData["id"])
}

func TestCreateOrderEmptyCartRejected(t *testing.T) {
	db := setupTestDB(t)
	customer := seedTestUser(t, db, models.RoleUser)
	router := setupOrderRouter(db, customer.ID, customer.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":         []map[string]interface{}{},
		"delivery_type": "pickup",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDeliveryOrderRequiresAddress(t *testing.T) {
	db := setupTestDB(t)
	customer := seedTestUser(t, db, models.RoleUser)
	product := seedTestProduct(t, db, "Tarte", 12.0)
	router := setupOrderRouter(db, customer.ID, customer.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerCannotReadOthersOrder(t *testing.T) {
	db := setupTestDB(t)
	owner := seedTestUser(t, db, models.RoleUser)
	stranger := seedTestUser(t, db, models.RoleUser)
	product := seedTestProduct(t, db, "Opera", 30.0)

	ownerRouter := setupOrderRouter(db, owner.ID, owner.Role)
	w := doJSON(t, ownerRouter, "POST", "/orders", map[string]interface{}{
		"items":         []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"delivery_type": "pickup",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	strangerRouter := setupOrderRouter(db, stranger.ID, stranger.Role)
	w = doJSON(t, strangerRouter, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	customer := seedTestUser(t, db, models.RoleUser)
	product := seedTestProduct(t, db, "Croissant", 3.0)
	router := setupOrderRouter(db, customer.ID, customer.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":         []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"delivery_type": "pickup",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "PUT", fmt.Sprintf("/orders/%d/cancelled", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(models.OrderStatusCancelled), data["status"])

	// Cancelling again hits the terminal guard.
	w = doJSON(t, router, "PUT", fmt.Sprintf("/orders/%d/cancelled", orderID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveRequiresAdminRole(t *testing.T) {
	db := setupTestDB(t)
	customer := seedTestUser(t, db, models.RoleUser)
	product := seedTestProduct(t, db, "Fraisier", 35.0)
	router := setupOrderRouter(db, customer.ID, customer.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":         []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"delivery_type": "pickup",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	// A customer reaching the approve handler is still rejected by the
	// service-level role check.
	w = doJSON(t, router, "PUT", fmt.Sprintf("/orders/%d/approved", orderID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
