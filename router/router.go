package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/controllers"
	"github.com/hossamfarhan/patisserie-app/middlewares"
	"github.com/hossamfarhan/patisserie-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before any route so every handler chain includes it.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	driverCtrl := controllers.NewDriverController(db)
	adminCtrl := controllers.NewAdminController(db)
	productCtrl := controllers.NewProductController(db)
	notifCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog browsing needs no account
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.POST("/logout", userCtrl.Logout)
	api.GET("/profile", userCtrl.GetProfile)

	api.GET("/notifications", notifCtrl.GetMyNotifications)
	api.PATCH("/notifications/:notif_id/read", notifCtrl.MarkNotificationRead)

	// CUSTOMER (checkout + own orders)
	user := api.Group("/orders")
	{
		user.POST("", orderCtrl.CreateOrder)
		user.GET("/user", orderCtrl.GetUserOrders)
		user.GET("/:order_id", orderCtrl.GetOrderByID)
		user.PUT("/:order_id/cancelled", orderCtrl.CancelOrder)
	}

	// ADMIN / STORE STAFF
	admin := api.Group("/admin")
	admin.Use(middlewares.AllowedTo(models.RoleAdmin))
	{
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/pending", adminCtrl.GetPendingOrders)
		admin.GET("/orders/stats", adminCtrl.GetOrderStats)
		admin.POST("/orders", orderCtrl.CreateOrder) // phone / walk-in entry
		admin.PUT("/orders/:order_id/approved", orderCtrl.ApproveOrder)
		admin.PUT("/orders/:order_id/transit", orderCtrl.TransitOrder)
		admin.PUT("/orders/:order_id/complete", orderCtrl.CompleteOrder)
		admin.PUT("/orders/:order_id/cancelled", orderCtrl.CancelOrder)

		admin.POST("/orders/:order_id/payments", paymentCtrl.AddPayment)
		admin.GET("/orders/:order_id/payments", paymentCtrl.GetOrderPayments)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)
	}

	// DELIVERY DRIVERS
	driver := api.Group("/driver")
	driver.Use(middlewares.AllowedTo(models.RoleDelivery))
	{
		driver.GET("/orders", driverCtrl.GetAvailableOrders)
		driver.GET("/orders/mine", driverCtrl.GetMyDeliveries)
		driver.PUT("/orders/:order_id/accept", driverCtrl.AcceptOrder)
		driver.PUT("/orders/:order_id/delivered", driverCtrl.DeliverOrder)
		driver.PUT("/orders/:order_id/decline", driverCtrl.DeclineOrder)
		driver.PUT("/orders/:order_id/cancelled", driverCtrl.CancelOrder)
	}

	return r
}
