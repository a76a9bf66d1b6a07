package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the single cart of a buyer. It is created lazily on first add
// and survives checkout with an emptied item list. Totals are derived
// from the items in the cart service and never stored.
type Cart struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OwnerID         uint           `gorm:"uniqueIndex;not null" json:"owner_id"`
	DiscountPercent int            `gorm:"not null;default:0" json:"discount_percent"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one line of a cart. Name and unit price are snapshots
// taken when the product was first added; a later catalog price change
// does not touch them. Lines are hard-deleted: a soft delete would leave
// the (cart_id, product_id) pair occupying the unique index and block
// re-adding the product.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
