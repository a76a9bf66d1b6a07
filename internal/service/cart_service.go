package service

import (
	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"

	"github.com/shopspring/decimal"
)

// CartView is a cart with its derived totals. TotalAfterDiscount is nil
// when no discount applies.
type CartView struct {
	OwnerID            uint              `json:"owner_id"`
	Items              []models.CartItem `json:"items"`
	DiscountPercent    int               `json:"discount_percent"`
	TotalPrice         models.Money      `json:"total_price"`
	TotalAfterDiscount *models.Money     `json:"total_after_discount"`
}

// CartService is the cart store. Totals are a pure function of the
// current line items and are recomputed on every read and mutation,
// never trusted from persisted state.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts a product into the owner's cart, creating the cart on
// first use. Adding a product already in the cart increments its
// quantity; the unit price stays at the snapshot taken on first add.
func (s *CartService) AddItem(ownerID, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart, err = s.cartRepo.CreateForOwner(ownerID)
		if err != nil {
			return nil, err
		}
	}

	affected, err := s.cartRepo.IncrementItemQuantity(cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		}
		if err := s.cartRepo.AppendItem(item); err != nil {
			return nil, err
		}
	}

	return s.view(ownerID)
}

// RemoveItem drops a product from the cart. Removing a product that is
// not in the cart succeeds without changing anything.
func (s *CartService) RemoveItem(ownerID, productID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.RemoveItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.view(ownerID)
}

// GetCart returns the owner's cart with freshly computed totals.
func (s *CartService) GetCart(ownerID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return buildCartView(cart), nil
}

// Clear empties the owner's cart outside of a checkout. Checkout clears
// the cart itself, inside its own transaction; this is the standalone
// operation. The cart entity survives with zero items.
func (s *CartService) Clear(ownerID uint) error {
	cart, err := s.cartRepo.GetByOwner(ownerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

func (s *CartService) view(ownerID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return buildCartView(cart), nil
}

func buildCartView(cart *models.Cart) *CartView {
	total := cartTotal(cart.Items)
	view := &CartView{
		OwnerID:         cart.OwnerID,
		Items:           cart.Items,
		DiscountPercent: cart.DiscountPercent,
		TotalPrice:      models.NewMoneyFromDecimal(total),
	}
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}
	if cart.DiscountPercent > 0 && cart.DiscountPercent <= constants.DiscountPercentMax {
		factor := decimal.NewFromInt(int64(constants.DiscountPercentMax - cart.DiscountPercent)).
			Div(decimal.NewFromInt(constants.DiscountPercentMax))
		discounted := models.NewMoneyFromDecimal(total.Mul(factor))
		view.TotalAfterDiscount = &discounted
	}
	return view
}

// cartTotal sums unit price times quantity over the line items.
func cartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
