package models

import "time"

type Cart struct {
	CartID     uint       `gorm:"primaryKey" json:"cart_id"`
	UserID     string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64    `json:"total_price"` // Always recomputed from item subtotals
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CartID        uint      `gorm:"index" json:"cart_id"`
	ProductID     uint      `json:"product_id"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"` // Unit price captured when the item was added
	SubTotalPrice float64   `json:"sub_total_price"`
	AddedAt       time.Time `json:"added_at"`
}
