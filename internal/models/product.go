package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Stock is mutated only through the
// conditional decrement in the product repository.
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ShopID        uint           `gorm:"not null;index" json:"shop_id"`
	Name          string         `gorm:"not null;index" json:"name"`
	Description   string         `gorm:"not null" json:"description"`
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock         int            `gorm:"not null;default:0" json:"stock"`
	Category      string         `gorm:"type:varchar(30);not null;default:'seed';index" json:"category"`
	Image         string         `json:"image,omitempty"`
	AverageRating float64        `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews  int            `gorm:"not null;default:0" json:"total_reviews"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Shop *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
