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

func setupProductRouter(db *gorm.DB, adminID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	productCtrl := controllers.NewProductController(db)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:product_id", productCtrl.GetProductByID)

	authed := router.Group("/", authAs(adminID, models.RoleAdmin))
	authed.POST("/admin/products", productCtrl.CreateProduct)
	authed.PUT("/admin/products/:product_id", productCtrl.UpdateProduct)
	return router
}

func TestProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	router := setupProductRouter(db, admin.ID)

	w := doJSON(t, router, "POST", "/admin/products", map[string]interface{}{
		"title":       "Mille-feuille",
		"description": "Layered puff pastry",
		"price":       45.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	productID := int(created["id"].(float64))
	assert.Equal(t, 45.0, created["price"])

	w = doJSON(t, router, "GET", "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 1)

	w = doJSON(t, router, "PUT", fmt.Sprintf("/admin/products/%d", productID), map[string]interface{}{
		"price": 50.0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 50.0, updated["price"])
	assert.Equal(t, "Mille-feuille", updated["title"])

	w = doJSON(t, router, "GET", fmt.Sprintf("/products/%d", productID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	router := setupProductRouter(db, admin.ID)

	w := doJSON(t, router, "POST", "/admin/products", map[string]interface{}{
		"title": "Freebie",
		"price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	admin := seedTestUser(t, db, models.RoleAdmin)
	router := setupProductRouter(db, admin.ID)

	w := doJSON(t, router, "GET", "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationsReadFlow(t *testing.T) {
	db := setupTestDB(t)
	user := seedTestUser(t, db, models.RoleUser)
	other := seedTestUser(t, db, models.RoleUser)

	title := "Order placed"
	notif := models.Notification{UserID: &user.ID, Title: &title, Message: "Order #1 placed"}
	require.NoError(t, db.Create(&notif).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", authAs(user.ID, models.RoleUser), notifCtrl.GetMyNotifications)
	router.PUT("/notifications/:notif_id/read", authAs(user.ID, models.RoleUser), notifCtrl.MarkNotificationRead)
	router.PUT("/other/notifications/:notif_id/read", authAs(other.ID, models.RoleUser), notifCtrl.MarkNotificationRead)

	w := doJSON(t, router, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, false, list[0].(map[string]interface{})["is_read"])

	// Someone else's notification cannot be marked read.
	w = doJSON(t, router, "PUT", fmt.Sprintf("/other/notifications/%d/read", notif.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "PUT", fmt.Sprintf("/notifications/%d/read", notif.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_read"])
}
