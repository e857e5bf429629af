package service

import "errors"

// 业务错误定义，由 handler 层映射为 HTTP 状态码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrInvalidRole        = errors.New("invalid role")

	ErrShopRequired    = errors.New("seller shop required")
	ErrNotProductOwner = errors.New("product does not belong to this shop")

	ErrInvalidPrice         = errors.New("invalid price")
	ErrDiscountExceedsPrice = errors.New("discount price cannot exceed price")
	ErrInvalidStock         = errors.New("invalid stock")
	ErrCategoryInvalid      = errors.New("invalid category")
	ErrProductNotAvailable  = errors.New("product not available")

	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartItemNotFound  = errors.New("cart item not found")

	ErrPaymentMethodInvalid = errors.New("invalid payment method")
	ErrShippingRequired     = errors.New("shipping address required")
	ErrOrderCannotCancel    = errors.New("order cannot be cancelled")
	ErrOrderUpdateFailed    = errors.New("order update failed")

	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrReviewExists  = errors.New("product already reviewed")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
