package models

import "time"

// NoDiscount is the discount name of an undiscounted product.
const NoDiscount = "None"

type Product struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string  `gorm:"not null" json:"title"`
	Description     string  `json:"description"`
	Price           float64 `gorm:"not null" json:"price"`
	Category        string  `gorm:"index" json:"category"`
	Image           string  `json:"image"`
	DiscountName    string  `gorm:"default:'None'" json:"discount_name"`
	DiscountPercent float64 `gorm:"default:0" json:"discount_percent"` // 0 means none
	RatingAverage   float64 `json:"rating_average"`
	RatingCount     int     `json:"rating_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
