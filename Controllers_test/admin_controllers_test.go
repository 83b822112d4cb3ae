package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/controllers"
	"github.com/hossamfarhan/patisserie-app/models"
)

func setupAdminRouter(db *gorm.DB, adminID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	adminCtrl := controllers.NewAdminController(db)
	orderCtrl := controllers.NewOrderController(db)

	authed := router.Group("/", authAs(adminID, models.RoleAdmin))
	authed.GET("/admin/orders", orderCtrl.GetAllOrders)
	authed.GET("/admin/orders/pending", adminCtrl.GetPendingOrders)
	authed.GET("/admin/orders/stats", adminCtrl.GetOrderStats)
	return router
}

func TestOrderStatsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	customer := seedTestUser(t, db, models.RoleUser)
	router := setupAdminRouter(db, admin.ID)

	completed := models.Order{
		OrderNumber:     1,
		UserID:          customer.ID,
		Status:          models.OrderStatusCompleted,
		TotalOrderPrice: 120,
		PaymentStatus:   models.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(&completed).Error)
	fresh := models.Order{
		OrderNumber:     2,
		UserID:          customer.ID,
		Status:          models.OrderStatusNew,
		TotalOrderPrice: 40,
		PaymentStatus:   models.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(&fresh).Error)

	w := doJSON(t, router, "GET", "/admin/orders/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Order stats", resp["message"])
	data := resp["data"].(map[string]interface{})
	counts := data["order_counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["completed"])
	assert.Equal(t, float64(1), counts["new"])
	assert.Equal(t, float64(120), data["total_sales_today"])
	assert.Equal(t, float64(120), data["total_sales_last_week"])
}

func TestPendingOrdersFeed(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	customer := seedTestUser(t, db, models.RoleUser)
	router := setupAdminRouter(db, admin.ID)

	for status, number := range map[int]int{
		models.OrderStatusNew:     1,
		models.OrderStatusTransit: 2,
	} {
		order := models.Order{
			OrderNumber:     number,
			UserID:          customer.ID,
			Status:          status,
			TotalOrderPrice: 10,
			PaymentStatus:   models.PaymentStatusPaid,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	w := doJSON(t, router, "GET", "/admin/orders/pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	pending := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, pending, 1)
	first := pending[0].(map[string]interface{})
	assert.Equal(t, float64(models.OrderStatusNew), first["status"])
}

func TestAllOrdersStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	customer := seedTestUser(t, db, models.RoleUser)
	router := setupAdminRouter(db, admin.ID)

	for _, status := range []int{models.OrderStatusNew, models.OrderStatusCancelled, models.OrderStatusCancelled} {
		order := models.Order{
			OrderNumber:     1,
			UserID:          customer.ID,
			Status:          status,
			TotalOrderPrice: 10,
			PaymentStatus:   models.PaymentStatusPaid,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	w := doJSON(t, router, "GET", "/admin/orders?status=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)

	w = doJSON(t, router, "GET", "/admin/orders?status=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/admin/orders", nil)
	assert.Len(t, decodeResponse(t, w)["data"], 3)
}

func TestAllOrdersScopedToAdminStore(t *testing.T) {
	db := setupTestDB(t)
	store := models.StoreAddress{Name: "Heliopolis", Address: "El Merghany St"}
	require.NoError(t, db.Create(&store).Error)

	scopedAdmin := models.User{
		Name: "Branch admin", Email: "heliopolis-admin@example.com",
		Password: "hashed", Role: models.RoleAdmin, StoreAddressID: &store.ID,
	}
	require.NoError(t, db.Create(&scopedAdmin).Error)
	customer := seedTestUser(t, db, models.RoleUser)

	inScope := models.Order{
		OrderNumber: 1, UserID: customer.ID, Status: models.OrderStatusNew,
		TotalOrderPrice: 20, PaymentStatus: models.PaymentStatusPaid,
		NearbyStoreAddressID: &store.ID,
	}
	outOfScope := models.Order{
		OrderNumber: 2, UserID: customer.ID, Status: models.OrderStatusNew,
		TotalOrderPrice: 30, PaymentStatus: models.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(&inScope).Error)
	require.NoError(t, db.Create(&outOfScope).Error)

	router := setupAdminRouter(db, scopedAdmin.ID)
	w := doJSON(t, router, "GET", "/admin/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	orders := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, orders, 1)
	first := orders[0].(map[string]interface{})
	assert.Equal(t, float64(inScope.ID), first["id"])
}

func TestStatsScopedToAdminStore(t *testing.T) {
	db := setupTestDB(t)
	store := models.StoreAddress{Name: "Zamalek", Address: "26th of July St"}
	require.NoError(t, db.Create(&store).Error)

	scopedAdmin := models.User{
		Name: "Branch admin", Email: "branch@example.com",
		Password: "hashed", Role: models.RoleAdmin, StoreAddressID: &store.ID,
	}
	require.NoError(t, db.Create(&scopedAdmin).Error)
	customer := seedTestUser(t, db, models.RoleUser)

	inScope := models.Order{
		OrderNumber: 1, UserID: customer.ID, Status: models.OrderStatusCompleted,
		TotalOrderPrice: 80, PaymentStatus: models.PaymentStatusPaid,
		NearbyStoreAddressID: &store.ID,
	}
	outOfScope := models.Order{
		OrderNumber: 2, UserID: customer.ID, Status: models.OrderStatusCompleted,
		TotalOrderPrice: 500, PaymentStatus: models.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(&inScope).Error)
	require.NoError(t, db.Create(&outOfScope).Error)

	router := setupAdminRouter(db, scopedAdmin.ID)
	w := doJSON(t, router, "GET", "/admin/orders/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(80), data["total_sales_today"])
}
