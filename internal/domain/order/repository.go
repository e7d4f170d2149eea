package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines order persistence.
type Repository interface {
	// Create stores the order together with its items atomically.
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Order, error)
	// UpdateStatus moves the order to next only if it is still in from.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, next Status) error
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error)
}
