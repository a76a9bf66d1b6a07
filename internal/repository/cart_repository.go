package repository

import (
	"errors"
	"time"

	"github.com/agrimarket/agrimarket/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. One cart per owner;
// line mutations use per-owner atomic updates rather than read-then-write.
type CartRepository interface {
	GetByOwner(ownerID uint) (*models.Cart, error)
	CreateForOwner(ownerID uint) (*models.Cart, error)
	AppendItem(item *models.CartItem) error
	IncrementItemQuantity(cartID, productID uint, delta int) (int64, error)
	RemoveItem(cartID, productID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByOwner fetches the owner's cart with its items in insertion order.
func (r *GormCartRepository) GetByOwner(ownerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("owner_id = ?", ownerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateForOwner creates an empty cart for the owner.
func (r *GormCartRepository) CreateForOwner(ownerID uint) (*models.Cart, error) {
	cart := &models.Cart{OwnerID: ownerID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// AppendItem inserts a new line item. The unique (cart_id, product_id)
// index rejects a concurrent duplicate insert.
func (r *GormCartRepository) AppendItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// IncrementItemQuantity bumps an existing line's quantity in a single
// conditional update; the snapshot price is left untouched. Returns the
// number of affected rows so the caller can tell a missing line apart.
func (r *GormCartRepository) IncrementItemQuantity(cartID, productID uint, delta int) (int64, error) {
	if cartID == 0 || productID == 0 || delta <= 0 {
		return 0, errors.New("invalid cart item increment params")
	}
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RemoveItem deletes a line item. Deleting an absent line is a no-op.
func (r *GormCartRepository) RemoveItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// ClearItems removes every line item from the cart.
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
