package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	orderControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/order"
	"github.com/zarib-ali-wasif/ecommerce-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(cfg.JwtSecret))
	{
		// Create a new order from the caller's cart
		orders.POST("/place", orderControllers.PlaceOrderHandler(db, cfg))

		// Fetch a single order
		orders.GET("/:orderNumber", orderControllers.GetOrderHandler(db))

		// Fetch orders for a specific user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Update order status (e.g., shipped, canceled)
		orders.PUT("/:orderNumber/status", orderControllers.UpdateOrderStatusHandler(db))
	}

	// websocket endpoint for real-time order updates
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
