package service

import (
	"strings"

	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"
)

// ProductInput is a create/update request for a catalog entry.
type ProductInput struct {
	Name        string
	Description string
	Price       models.Money
	Stock       int
	Category    string
	Image       string
}

// ProductService manages the catalog the cart and order engine read.
type ProductService struct {
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository, shopRepo repository.ShopRepository) *ProductService {
	return &ProductService{productRepo: productRepo, shopRepo: shopRepo}
}

// List returns catalog products matching the filter.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.ProductListMaxSize {
		filter.PageSize = constants.ProductListMaxSize
	}
	return s.productRepo.List(filter)
}

// Get fetches a product by ID.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create adds a product to the owner's shop.
func (s *ProductService) Create(ownerID uint, input ProductInput) (*models.Product, error) {
	shop, err := s.shopRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	product := &models.Product{
		ShopID:      shop.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    normalizeCategory(input.Category),
		Image:       strings.TrimSpace(input.Image),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update rewrites a product the owner's shop sells.
func (s *ProductService) Update(ownerID, productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = normalizeCategory(input.Category)
	product.Image = strings.TrimSpace(input.Image)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product the owner's shop sells.
func (s *ProductService) Delete(ownerID, productID uint) error {
	product, err := s.ownedProduct(ownerID, productID)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(product.ID)
}

func (s *ProductService) ownedProduct(ownerID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	shop, err := s.shopRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	if product.ShopID != shop.ID {
		return nil, ErrNotProductOwner
	}
	return product, nil
}

func normalizeCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	switch normalized {
	case constants.CategoryCropProtection:
		return constants.CategoryCropProtection
	default:
		return constants.CategorySeed
	}
}
