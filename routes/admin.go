package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	cartControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/cart"
	imageControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/image"
	orderControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/order"
	productcontroller "github.com/zarib-ali-wasif/ecommerce-api/controllers/product"
	userControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/user"
	"github.com/zarib-ali-wasif/ecommerce-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with
// the Admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.JwtSecret), middleware.RequireAdmin())
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))

			productAdmin.POST("/discount", productcontroller.ApplyDiscountHandler(db))
			productAdmin.DELETE("/discount", productcontroller.RemoveDiscountHandler(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.DELETE("/:orderNumber", orderControllers.DeleteOrderHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Dashboard ───────────
		adminGroup.GET("/statistics", orderControllers.GetStatisticsHandler(db))
		adminGroup.GET("/revenue", orderControllers.GetRevenueRangeHandler(db))

		// ─────────── Uploads & Carts ───────────
		adminGroup.POST("/image/upload", imageControllers.UploadImage(cfg))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
