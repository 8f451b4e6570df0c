package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
)

type ApplyDiscountInput struct {
	Name     string   `json:"name" binding:"required"`
	Percent  *float64 `json:"percent" binding:"required"`
	Category string   `json:"category"`
	Override bool     `json:"override"`
}

type RemoveDiscountInput struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// ApplyDiscount bulk-sets a discount on the catalog. Optional scoping by
// category; with Override false only currently undiscounted products
// (percent 0) are touched. Idempotent set-based update, no per-row logic.
// Carts are deliberately not reconciled; their captured unit prices stay as
// quoted until checkout.
func ApplyDiscount(db *gorm.DB, input ApplyDiscountInput) (int64, error) {
	query := db.Model(&models.Product{})
	if input.Category != "" {
		query = query.Where("category = ?", input.Category)
	}
	if !input.Override {
		query = query.Where("discount_percent = 0")
	}

	result := query.Updates(map[string]interface{}{
		"discount_name":    input.Name,
		"discount_percent": *input.Percent,
	})
	return result.RowsAffected, result.Error
}

// RemoveDiscount resets matching products to undiscounted. Optional scoping
// by category and/or discount name.
func RemoveDiscount(db *gorm.DB, input RemoveDiscountInput) (int64, error) {
	query := db.Model(&models.Product{})
	if input.Category != "" {
		query = query.Where("category = ?", input.Category)
	}
	if input.Name != "" {
		query = query.Where("discount_name = ?", input.Name)
	}

	result := query.Updates(map[string]interface{}{
		"discount_name":    models.NoDiscount,
		"discount_percent": 0,
	})
	return result.RowsAffected, result.Error
}

// POST /admin/products/discount
func ApplyDiscountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyDiscountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if *input.Percent < 0 || *input.Percent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percent must be between 0 and 100"})
			return
		}

		affected, err := ApplyDiscount(db, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply discount"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Discount applied", "products_updated": affected})
	}
}

// DELETE /admin/products/discount
func RemoveDiscountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RemoveDiscountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		affected, err := RemoveDiscount(db, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove discount"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Discount removed", "products_updated": affected})
	}
}
