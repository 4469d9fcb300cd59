package services

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("item not in cart")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotAuthorized      = errors.New("not authorized to review this order")
	ErrNoProducts         = errors.New("testimonial must reference at least one product")
)
