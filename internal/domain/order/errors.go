package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrRestaurantInactive  = errors.New("restaurant is not accepting orders")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrMenuItemMismatch    = errors.New("menu item does not belong to this restaurant")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrStatusChanged           = errors.New("order status was changed concurrently")
)
