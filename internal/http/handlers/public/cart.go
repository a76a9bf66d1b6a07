package public

import (
	"errors"

	"github.com/agrimarket/agrimarket/internal/http/response"
	"github.com/agrimarket/agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart payload. A missing quantity
// means one unit.
type AddCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the caller's cart with recomputed totals.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, response.CodeNotFound, "cart not found", nil)
		default:
			respondError(c, response.CodeInternal, "cart fetch failed", err)
		}
		return
	}

	response.Success(c, cart)
}

// AddCartItem adds a product to the cart or bumps its quantity.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	req := AddCartItemRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "invalid request body", err)
			return
		}
	}

	cart, err := h.CartService.AddItem(uid, productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "quantity must be at least 1", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondError(c, response.CodeInternal, "cart update failed", err)
		}
		return
	}

	response.Success(c, cart)
}

// RemoveCartItem deletes a product line. Removing a product that is not
// in the cart succeeds without changing anything.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.CartService.RemoveItem(uid, productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, response.CodeNotFound, "cart not found", nil)
		default:
			respondError(c, response.CodeInternal, "cart update failed", err)
		}
		return
	}

	response.Success(c, cart)
}
