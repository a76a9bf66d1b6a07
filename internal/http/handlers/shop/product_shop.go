package shop

import (
	"errors"
	"strconv"

	"github.com/agrimarket/agrimarket/internal/http/response"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest is the create/update payload for a shop product.
type ProductRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price" binding:"required"`
	Stock       int          `json:"stock"`
	Category    string       `json:"category"`
	Image       string       `json:"image"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		Image:       r.Image,
	}
}

// CreateProduct adds a product to the caller's shop.
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(uid, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			respondError(c, response.CodeNotFound, "shop not found", nil)
		default:
			respondError(c, response.CodeInternal, "product create failed", err)
		}
		return
	}

	response.Success(c, product)
}

// UpdateProduct edits one of the caller's products.
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(uid, productID, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct removes one of the caller's products.
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(uid, productID); err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrShopNotFound):
		respondError(c, response.CodeNotFound, "shop not found", nil)
	case errors.Is(err, service.ErrNotProductOwner):
		respondError(c, response.CodeForbidden, "product belongs to another shop", nil)
	default:
		respondError(c, response.CodeInternal, "product update failed", err)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
