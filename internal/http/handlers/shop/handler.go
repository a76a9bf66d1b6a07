package shop

import (
	handlershared "github.com/agrimarket/agrimarket/internal/http/handlers/shared"
	"github.com/agrimarket/agrimarket/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler serves the shop-owner API for managing a shop's products.
type Handler struct {
	*provider.Container
}

// New creates the shop handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
