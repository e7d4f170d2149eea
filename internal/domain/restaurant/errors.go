package restaurant

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrNotOwner           = errors.New("only the restaurant owner can modify this restaurant")
	ErrHasOrders          = errors.New("restaurant has orders and cannot be deleted")
)
