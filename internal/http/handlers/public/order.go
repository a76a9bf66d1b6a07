package public

import (
	"errors"
	"strconv"

	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/http/response"
	"github.com/agrimarket/agrimarket/internal/repository"
	"github.com/agrimarket/agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutItemRequest is one explicit order line.
type CheckoutItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// ShippingAddressRequest is the delivery address for an order.
type ShippingAddressRequest struct {
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
}

// CheckoutRequest creates an order either from explicit items or from
// the caller's cart.
type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items"`
	UseCart         bool                   `json:"use_cart"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method"`
}

// Checkout turns the request into an immutable order.
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if !req.UseCart && len(req.Items) == 0 {
		respondError(c, response.CodeBadRequest, "order has no items", nil)
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		OwnerID:       uid,
		Items:         items,
		UseCart:       req.UseCart,
		Street:        req.ShippingAddress.Street,
		City:          req.ShippingAddress.City,
		Phone:         req.ShippingAddress.Phone,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, order)
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		respondError(c, response.CodeBadRequest, "order has no items", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "quantity must be at least 1", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidPayment):
		respondError(c, response.CodeBadRequest, "invalid payment method", nil)
	default:
		respondError(c, response.CodeInternal, "checkout failed", err)
	}
}

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByOwner(repository.OrderListFilter{
		OwnerID:  uid,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder returns one of the caller's orders with its item snapshots.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderForOwner(orderID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "order fetch failed", err)
		}
		return
	}

	response.Success(c, order)
}
