package orderControllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// GET /admin/statistics
func GetStatisticsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, productCount, orderCount int64
		if err := db.Model(&models.User{}).Where("verified = ?", true).Count(&userCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}

		var revenue float64
		if err := db.Model(&models.Order{}).
			Where("status <> ?", models.OrderStatusCanceled).
			Select("COALESCE(SUM(summary_grand_total), 0)").
			Scan(&revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}

		type statusCount struct {
			Status models.OrderStatus
			Count  int64
		}
		var perStatus []statusCount
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&perStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		ordersByStatus := make(map[models.OrderStatus]int64, len(perStatus))
		for _, sc := range perStatus {
			ordersByStatus[sc.Status] = sc.Count
		}

		c.JSON(http.StatusOK, gin.H{
			"users":            userCount,
			"products":         productCount,
			"orders":           orderCount,
			"revenue":          utils.Round2(revenue),
			"orders_by_status": ordersByStatus,
		})
	}
}

// RevenueInRange sums the grand totals of non-canceled orders between two
// dates, grouped per day. Grouping happens in Go so the query stays portable
// across the production and test dialects.
func RevenueInRange(db *gorm.DB, from, to time.Time) ([]DailyRevenue, error) {
	var orders []models.Order
	if err := db.
		Where("order_date >= ? AND order_date < ? AND status <> ?", from, to, models.OrderStatusCanceled).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailyRevenue)
	for _, order := range orders {
		day := order.OrderDate.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyRevenue{Day: day}
			byDay[day] = entry
		}
		entry.Revenue = utils.Round2(entry.Revenue + order.Summary.GrandTotal)
		entry.Orders++
	}

	days := make([]DailyRevenue, 0, len(byDay))
	for _, entry := range byDay {
		days = append(days, *entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}

// GET /admin/revenue?from=2026-01-01&to=2026-02-01
func GetRevenueRangeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		if !to.After(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must be after 'from'"})
			return
		}

		days, err := RevenueInRange(db, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue"})
			return
		}
		c.JSON(http.StatusOK, days)
	}
}
