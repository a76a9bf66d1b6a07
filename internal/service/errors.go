package service

import "errors"

// Sentinel errors returned by the services. Handlers map these to
// response codes; everything else is reported as an internal error.
var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrShopNotFound       = errors.New("shop not found")
	ErrNotProductOwner    = errors.New("product belongs to another shop")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrInvalidDiscount    = errors.New("discount percent out of range")
)
