package admin

import (
	handlershared "github.com/agrimarket/agrimarket/internal/http/handlers/shared"
	"github.com/agrimarket/agrimarket/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin API. Routes reach it only behind the admin
// role gate.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
