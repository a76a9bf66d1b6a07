package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an immutable snapshot created at checkout. Items are never
// added, removed or re-priced afterwards; only the payment and delivery
// flags move, each paired with its timestamp.
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	OwnerID       uint           `gorm:"index;not null" json:"owner_id"`
	Street        string         `gorm:"not null" json:"street"`
	City          string         `gorm:"not null" json:"city"`
	Phone         string         `gorm:"type:varchar(30);not null" json:"phone"`
	PaymentMethod string         `gorm:"type:varchar(10);not null;default:'cash'" json:"payment_method"`
	IsPaid        bool           `gorm:"not null;default:false;index" json:"is_paid"`
	PaidAt        *time.Time     `json:"paid_at"`
	IsDelivered   bool           `gorm:"not null;default:false;index" json:"is_delivered"`
	DeliveredAt   *time.Time     `json:"delivered_at"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. UnitPrice is the price at order
// time and stays authoritative for billing. LineDiscount is a documented
// extension point and defaults to zero.
type OrderItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	OrderID      uint           `gorm:"index;not null" json:"order_id"`
	ProductID    uint           `gorm:"index;not null" json:"product_id"`
	Name         string         `gorm:"not null" json:"name"`
	UnitPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	LineDiscount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"line_discount"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
