package orderControllers

import (
	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

// ComputeSummary freezes the checkout arithmetic for an order. Line prices
// are the unit prices captured in the cart; discount percents are the
// products' live values at checkout time. All figures are rounded to 2
// decimal places for storage.
func ComputeSummary(items []models.CartItem, discountPercent map[uint]float64, gstPercent float64) models.OrderSummary {
	var subtotal, discount float64
	for _, item := range items {
		line := item.Price * float64(item.Quantity)
		subtotal += line
		discount += line * discountPercent[item.ProductID] / 100
	}
	gst := subtotal * gstPercent / 100

	return models.OrderSummary{
		Subtotal:       utils.Round2(subtotal),
		DiscountAmount: utils.Round2(discount),
		GSTAmount:      utils.Round2(gst),
		GrandTotal:     utils.Round2(subtotal - discount + gst),
	}
}
