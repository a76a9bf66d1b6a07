package repository

import (
	"errors"

	"github.com/agrimarket/agrimarket/internal/models"

	"gorm.io/gorm"
)

// ShopRepository is the shop data access interface.
type ShopRepository interface {
	Create(shop *models.Shop) error
	GetByID(id uint) (*models.Shop, error)
	GetByOwner(ownerID uint) (*models.Shop, error)
}

// GormShopRepository is the GORM implementation.
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates the shop repository.
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Create inserts a shop.
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// GetByID fetches a shop by ID.
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// GetByOwner fetches the shop belonging to an owner.
func (r *GormShopRepository) GetByOwner(ownerID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}
