package public

import "github.com/agrimarket/agrimarket/internal/provider"

// Handler serves the public and buyer-facing API: auth, catalog
// browsing, cart and orders.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
