package admin

import (
	"errors"
	"strconv"

	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/http/response"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"
	"github.com/agrimarket/agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest flips the payment and delivery flags. Absent
// fields are left untouched.
type UpdateOrderStatusRequest struct {
	IsPaid      *bool `json:"is_paid"`
	IsDelivered *bool `json:"is_delivered"`
}

// ListOrders returns every order, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	orders, total, err := h.OrderService.ListAllOrders(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder returns any order by id.
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderForAdmin(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatus applies the requested flag changes. Setting a flag
// to its current value is a no-op; either flag can also be reverted.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.IsPaid == nil && req.IsDelivered == nil {
		respondError(c, response.CodeBadRequest, "nothing to update", nil)
		return
	}

	var order *models.Order
	var err error
	if req.IsPaid != nil {
		order, err = h.OrderService.SetPaid(orderID, *req.IsPaid)
		if err != nil {
			respondOrderError(c, err)
			return
		}
	}
	if req.IsDelivered != nil {
		order, err = h.OrderService.SetDelivered(orderID, *req.IsDelivered)
		if err != nil {
			respondOrderError(c, err)
			return
		}
	}

	response.Success(c, order)
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	default:
		respondError(c, response.CodeInternal, "order update failed", err)
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
