package public

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agrimarket/agrimarket/internal/cache"
	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/http/response"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"
	"github.com/agrimarket/agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	productListCacheTTL = 30 * time.Second
)

type cachedProductList struct {
	Products   []models.Product    `json:"products"`
	Pagination response.Pagination `json:"pagination"`
}

// ListProducts returns the public catalog, paginated. Unfiltered first
// pages are served from the cache when it is live.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	cacheKey := ""
	if category == "" && search == "" {
		cacheKey = fmt.Sprintf("products:list:%d:%d", page, pageSize)
		var cached cachedProductList
		if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
			response.SuccessWithPage(c, cached.Products, cached.Pagination)
			return
		}
	}

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Category: category,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	if cacheKey != "" {
		_ = cache.SetJSON(c.Request.Context(), cacheKey, cachedProductList{
			Products:   products,
			Pagination: pagination,
		}, productListCacheTTL)
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct returns one catalog product.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.Success(c, product)
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

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
