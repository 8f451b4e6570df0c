package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

var (
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrIllegalTransition    = errors.New("illegal status transition")
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	OrderNumber   string `json:"order_number" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Address       string `json:"address" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Core Logic --------

// PlaceOrder snapshots the user's cart into an immutable order. The checkout
// summary is computed once here, using the cart's captured unit prices and
// the products' live discount percents, and never recomputed afterwards.
func PlaceOrder(db *gorm.DB, cfg *config.Config, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Order{}).
			Where("order_number = ?", req.OrderNumber).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateOrderNumber
		}

		var cart models.Cart
		if err := utils.LockForUpdate(tx).Preload("Items").
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		discountPercent := make(map[uint]float64, len(cart.Items))
		var orderItems []models.OrderItem
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			discountPercent[item.ProductID] = product.DiscountPercent

			orderItems = append(orderItems, models.OrderItem{
				ProductID:       item.ProductID,
				ProductName:     product.Title,
				ProductCategory: product.Category,
				Quantity:        item.Quantity,
				Price:           item.Price,
				Total:           utils.Round2(item.Price * float64(item.Quantity)),
			})
		}

		order = models.Order{
			OrderNumber:   req.OrderNumber,
			UserID:        userID,
			Email:         req.Email,
			Address:       req.Address,
			PaymentMethod: req.PaymentMethod,
			Items:         orderItems,
			Summary:       ComputeSummary(cart.Items, discountPercent, cfg.GSTPercent),
			Status:        models.OrderStatusPending,
			OrderDate:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Empty the cart; the record itself stays until explicitly deleted.
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&cart).Update("total_price", 0).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus is the single authoritative setter for an order's status.
func UpdateStatus(db *gorm.DB, orderNumber string, to models.OrderStatus) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		err := utils.LockForUpdate(tx).Where("order_number = ?", orderNumber).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if !models.CanTransition(order.Status, to) {
			return ErrIllegalTransition
		}

		order.Status = to
		return tx.Model(&order).Update("status", to).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, cfg, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateOrderNumber):
				c.JSON(http.StatusConflict, gin.H{"error": "Order number already exists"})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			default:
				utils.Zlog.Error("Failed to place order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		broadcastOrderEvent("orderPlaced", order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/:orderNumber
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		var order models.Order
		if err := db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /orders/:orderNumber/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := UpdateStatus(db, orderNumber, status)
		if err != nil {
			switch {
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, ErrIllegalTransition):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Illegal status transition"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}

		broadcastOrderEvent("statusChanged", order)
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /admin/orders/:orderNumber
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		var order models.Order
		if err := db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if err := db.Select("Items").Delete(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
