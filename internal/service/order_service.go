package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/logger"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/queue"
	"github.com/agrimarket/agrimarket/internal/repository"

	"gorm.io/gorm"
)

// Statuses carried on order notification tasks.
const (
	OrderStatusPaid             = "paid"
	OrderStatusPaymentReverted  = "payment_reverted"
	OrderStatusDelivered        = "delivered"
	OrderStatusDeliveryReverted = "delivery_reverted"
)

// OrderService is the order engine: it turns carts or explicit item
// lists into immutable order snapshots and moves orders through the
// paid/delivered flags.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// CheckoutItem is one requested order line.
type CheckoutItem struct {
	ProductID uint
	Quantity  int
}

// CheckoutInput describes a checkout request. When UseCart is set the
// items come from the owner's cart and the cart is emptied on success;
// either way every item is re-validated against the live catalog.
type CheckoutInput struct {
	OwnerID       uint
	Items         []CheckoutItem
	UseCart       bool
	Street        string
	City          string
	Phone         string
	PaymentMethod string
}

// Checkout validates and reserves every requested item, snapshots
// prices and persists the order. Reservations, the order insert and the
// cart clear run in one transaction: if any item fails, earlier stock
// decrements roll back with it.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	paymentMethod, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := input.Items
	var cartID uint
	if input.UseCart {
		cart, cartErr := s.cartRepo.GetByOwner(input.OwnerID)
		if cartErr != nil {
			return nil, cartErr
		}
		if cart == nil || len(cart.Items) == 0 {
			return nil, ErrEmptyOrder
		}
		cartID = cart.ID
		items = make([]CheckoutItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			items = append(items, CheckoutItem{ProductID: line.ProductID, Quantity: line.Quantity})
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	order := &models.Order{
		OwnerID:       input.OwnerID,
		Street:        strings.TrimSpace(input.Street),
		City:          strings.TrimSpace(input.City),
		Phone:         strings.TrimSpace(input.Phone),
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Quantity <= 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrInvalidQuantity)
			}
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrProductNotFound)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("product %d: requested %d, available %d: %w",
					item.ProductID, item.Quantity, product.Stock, ErrInsufficientStock)
			}
			affected, err := productRepo.ReserveStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("product %d: requested %d: %w",
					item.ProductID, item.Quantity, ErrInsufficientStock)
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
			})
		}

		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}

		if input.UseCart {
			if err := s.cartRepo.WithTx(tx).ClearItems(cartID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// SetPaid flips the payment flag of an order, stamping or clearing
// paidAt to match. Repeating the current state is a no-op.
func (s *OrderService) SetPaid(orderID uint, isPaid bool) (*models.Order, error) {
	return s.setFlag(orderID, "is_paid", "paid_at", isPaid)
}

// SetDelivered flips the delivery flag of an order, stamping or
// clearing deliveredAt to match. Repeating the current state is a no-op.
func (s *OrderService) SetDelivered(orderID uint, isDelivered bool) (*models.Order, error) {
	return s.setFlag(orderID, "is_delivered", "delivered_at", isDelivered)
}

func (s *OrderService) setFlag(orderID uint, flagColumn, stampColumn string, value bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	current := order.IsPaid
	if flagColumn == "is_delivered" {
		current = order.IsDelivered
	}
	if current == value {
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		flagColumn:   value,
		"updated_at": now,
	}
	if value {
		updates[stampColumn] = now
	} else {
		updates[stampColumn] = nil
	}
	if err := s.orderRepo.UpdateStatus(orderID, updates); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	s.notifyStatusChange(updated, flagColumn, value)
	return updated, nil
}

// notifyStatusChange queues a status email. Delivery is best effort; a
// queue failure never fails the transition.
func (s *OrderService) notifyStatusChange(order *models.Order, flagColumn string, value bool) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	status := ""
	switch {
	case flagColumn == "is_paid" && value:
		status = OrderStatusPaid
	case flagColumn == "is_paid":
		status = OrderStatusPaymentReverted
	case flagColumn == "is_delivered" && value:
		status = OrderStatusDelivered
	default:
		status = OrderStatusDeliveryReverted
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		logger.Errorw("order_enqueue_status_email_failed",
			"order_id", order.ID,
			"status", status,
			"error", err,
		)
	}
}

// GetOrderForOwner fetches one of the owner's orders.
func (s *OrderService) GetOrderForOwner(orderID uint, ownerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndOwner(orderID, ownerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderForAdmin fetches any order.
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByOwner returns the owner's orders, newest first.
func (s *OrderService) ListOrdersByOwner(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	return s.orderRepo.ListByOwner(filter)
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	return s.orderRepo.ListAll(filter)
}

func normalizePaymentMethod(method string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(method))
	switch normalized {
	case "":
		return constants.PaymentMethodCash, nil
	case constants.PaymentMethodCard, constants.PaymentMethodCash:
		return normalized, nil
	default:
		return "", ErrInvalidPayment
	}
}

// IsClientError reports whether err belongs to the client-correctable
// taxonomy rather than an infrastructure fault.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrInvalidQuantity,
		ErrProductNotFound,
		ErrCartNotFound,
		ErrEmptyOrder,
		ErrInsufficientStock,
		ErrOrderNotFound,
		ErrInvalidPayment,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
