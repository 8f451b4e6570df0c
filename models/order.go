package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "Processing" // Being prepared for dispatch
	OrderStatusShipped    OrderStatus = "Shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // Customer received the items
	OrderStatusCanceled   OrderStatus = "Canceled"   // Canceled before delivery
)

// statusRank orders the forward chain Pending → Processing → Shipped → Delivered.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// ParseOrderStatus maps a request string to a known status.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case "pending":
		return OrderStatusPending, nil
	case "processing":
		return OrderStatusProcessing, nil
	case "shipped":
		return OrderStatusShipped, nil
	case "delivered":
		return OrderStatusDelivered, nil
	case "canceled", "cancelled":
		return OrderStatusCanceled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// CanTransition reports whether an order may move from one status to another.
// Forward skips along the chain are allowed; Canceled is reachable from any
// non-terminal state; Delivered and Canceled are terminal.
func CanTransition(from, to OrderStatus) bool {
	if from == OrderStatusDelivered || from == OrderStatusCanceled {
		return false
	}
	if to == OrderStatusCanceled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Order is an immutable snapshot taken at checkout. Only Status changes
// after creation.
type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	OrderNumber   string       `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID        string       `gorm:"index;not null" json:"user_id"`
	Email         string       `json:"email"`
	Address       string       `json:"address"`
	PaymentMethod string       `json:"payment_method"` // e.g. "card", "cod"
	Items         []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Summary       OrderSummary `gorm:"embedded;embeddedPrefix:summary_" json:"summary"`
	Status        OrderStatus  `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	OrderDate     time.Time    `json:"order_date"`
}

// OrderItem copies product fields at checkout so later catalog changes never
// alter a placed order.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderID         uint    `gorm:"index" json:"order_id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductCategory string  `json:"product_category"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	Total           float64 `json:"total"`
}

type OrderSummary struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	GSTAmount      float64 `json:"gst_amount"`
	GrandTotal     float64 `json:"grand_total"`
}
