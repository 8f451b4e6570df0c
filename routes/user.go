package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	cartControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/cart"
	productcontroller "github.com/zarib-ali-wasif/ecommerce-api/controllers/product"
	userControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/user"
	"github.com/zarib-ali-wasif/ecommerce-api/middleware"
)

// SetupUserRoutes registers the "/user" and "/cart" endpoints. Requires JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JwtSecret))
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// Ratings require an authenticated user
		userGroup.POST("/products/:id/rating", productcontroller.RateProduct(db))
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(cfg.JwtSecret))
	{
		cartGroup.GET("/", cartControllers.GetCartHandler(db))                          // GET /cart
		cartGroup.POST("/items", cartControllers.AddItemHandler(db))                    // POST /cart/items
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateQuantityHandler(db))  // PUT /cart/items/:product_id
		cartGroup.DELETE("/items/:product_id", cartControllers.RemoveItemHandler(db))   // DELETE /cart/items/:product_id
		cartGroup.DELETE("/", cartControllers.DeleteCartHandler(db))                    // DELETE /cart
	}
}
