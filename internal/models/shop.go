package models

import (
	"time"

	"gorm.io/gorm"
)

// Shop groups the products a shop owner sells.
type Shop struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Address     string         `json:"address,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:ShopID" json:"products,omitempty"`
}

// TableName sets the table name.
func (Shop) TableName() string {
	return "shops"
}
