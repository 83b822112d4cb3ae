package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/services"
	"github.com/hossamfarhan/patisserie-app/utils"
)

type AdminController struct {
	DB    *gorm.DB
	stats *services.StatsService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		DB:    db,
		stats: services.NewStatsService(db),
	}
}

// GetOrderStats -> dashboard aggregate scoped to the admin's store branch.
func (ac *AdminController) GetOrderStats(c *gin.Context) {
	var admin models.User
	if err := ac.DB.First(&admin, actorID(c)).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	stats, err := ac.stats.ComputeStats(admin.StoreAddressID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats", stats)
}

// GetPendingOrders -> the new-order feed admins triage from.
func (ac *AdminController) GetPendingOrders(c *gin.Context) {
	var admin models.User
	if err := ac.DB.First(&admin, actorID(c)).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	query := ac.DB.Preload("CartItems.Product").Preload("User").
		Where("status = ?", models.OrderStatusNew)
	if admin.StoreAddressID != nil {
		query = query.Where("nearby_store_address_id = ?", *admin.StoreAddressID)
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}
