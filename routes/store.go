package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/zarib-ali-wasif/ecommerce-api/controllers/product"
)

// SetupStoreRoutes registers the public "/store/*" catalog endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	store := r.Group("/store")
	{
		store.GET("/products", productcontroller.GetProducts(db))
		store.GET("/products/:id", productcontroller.GetProductByID(db))
		store.GET("/categories", productcontroller.GetCategories(db))
	}
}
