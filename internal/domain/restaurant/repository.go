package restaurant

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines restaurant persistence.
type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	GetByID(ctx context.Context, restaurantID uuid.UUID) (*Restaurant, error)
	// ListActive returns active restaurants, newest first.
	ListActive(ctx context.Context) ([]*Restaurant, error)
	Update(ctx context.Context, restaurant *Restaurant) error
	Delete(ctx context.Context, restaurantID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// MenuRepository defines menu item persistence.
type MenuRepository interface {
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]*MenuItem, error)
	GetByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, itemID uuid.UUID) error
}
