package constants

// User roles
const (
	RoleBuyer     = "buyer"
	RoleFarmer    = "farmer"
	RoleShopOwner = "shopowner"
	RoleAdmin     = "admin"
)

// Payment methods
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Product categories
const (
	CategorySeed           = "seed"
	CategoryCropProtection = "cropprotection"
)

// Queue names
const (
	QueueDefault = "default"
)

// Task type names
const (
	TaskOrderStatusEmail = "order:status_email"
)

// Pagination defaults
const (
	DefaultPage        = 1
	DefaultPageSize    = 20
	MaxPageSize        = 100
	ProductListMaxSize = 200
)

// DiscountPercentMax is the upper bound for a cart-level discount.
const DiscountPercentMax = 100
