package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity"`
}

// recomputeTotal derives the cart total from scratch. Mutations never patch
// the total incrementally; summing the line subtotals on every change keeps
// the denormalized field from drifting.
func recomputeTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.SubTotalPrice
	}
	return utils.Round2(total)
}

// AddItem puts a product in the user's cart. A missing or non-positive
// quantity clamps to 1. An existing line for the product is incremented
// instead of duplicated; its unit price stays the one captured when the line
// was first added.
func AddItem(db *gorm.DB, userID string, productID uint, qty *int) (*models.Cart, error) {
	quantity := 1
	if qty != nil && *qty > 0 {
		quantity = *qty
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var cart models.Cart
	err := db.Transaction(func(tx *gorm.DB) error {
		err := utils.LockForUpdate(tx).Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First item: create the cart with this single line.
			line := models.CartItem{
				ProductID:     product.ID,
				Quantity:      quantity,
				Price:         product.Price,
				SubTotalPrice: utils.Round2(product.Price * float64(quantity)),
				AddedAt:       time.Now(),
			}
			cart = models.Cart{
				UserID:     userID,
				Items:      []models.CartItem{line},
				TotalPrice: line.SubTotalPrice,
			}
			return tx.Create(&cart).Error
		}
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.CartID).Order("id").Find(&items).Error; err != nil {
			return err
		}

		found := false
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity += quantity
				items[i].SubTotalPrice = utils.Round2(items[i].Price * float64(items[i].Quantity))
				items[i].AddedAt = time.Now()
				if err := tx.Save(&items[i]).Error; err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			line := models.CartItem{
				CartID:        cart.CartID,
				ProductID:     product.ID,
				Quantity:      quantity,
				Price:         product.Price,
				SubTotalPrice: utils.Round2(product.Price * float64(quantity)),
				AddedAt:       time.Now(),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			items = append(items, line)
		}

		cart.Items = items
		cart.TotalPrice = recomputeTotal(items)
		return tx.Model(&cart).Update("total_price", cart.TotalPrice).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateQuantity overwrites a line's quantity. A nil quantity is a defensive
// no-op returning the cart unchanged. A quantity of zero or less removes the
// line entirely.
func UpdateQuantity(db *gorm.DB, userID string, productID uint, qty *int) (*models.Cart, error) {
	var cart models.Cart

	if qty == nil {
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCartNotFound
			}
			return nil, err
		}
		return &cart, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := utils.LockForUpdate(tx).Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		if *qty <= 0 {
			// Update-to-zero means delete, not a zero-quantity row.
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		} else {
			item.Quantity = *qty
			item.SubTotalPrice = utils.Round2(item.Price * float64(item.Quantity))
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.CartID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		cart.Items = items
		cart.TotalPrice = recomputeTotal(items)
		return tx.Model(&cart).Update("total_price", cart.TotalPrice).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem drops a line and recomputes the total. An emptied cart record is
// kept; only DeleteCart removes it.
func RemoveItem(db *gorm.DB, userID string, productID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Transaction(func(tx *gorm.DB) error {
		err := utils.LockForUpdate(tx).Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return err
		}

		result := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrItemNotFound
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.CartID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		cart.Items = items
		cart.TotalPrice = recomputeTotal(items)
		return tx.Model(&cart).Update("total_price", cart.TotalPrice).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrCartNotFound):
		return http.StatusNotFound, "User cart not found"
	case errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound, "Cart item not found"
	case errors.Is(err, ErrProductNotFound):
		return http.StatusBadRequest, "Product does not exist"
	default:
		return http.StatusInternalServerError, "Failed to update cart"
	}
}

// -------- Handlers --------

// POST /cart/items
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			status, msg := statusFor(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// PUT /cart/items/:product_id
func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := UpdateQuantity(db, userID, productID, input.Quantity)
		if err != nil {
			status, msg := statusFor(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /cart/items/:product_id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		cart, err := RemoveItem(db, userID, productID)
		if err != nil {
			status, msg := statusFor(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /cart
func DeleteCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		if err := db.Select("Items").Delete(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
