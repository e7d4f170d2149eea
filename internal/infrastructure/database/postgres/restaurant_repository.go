package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *DB
}

func NewRestaurantRepository(db *DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}
	now := time.Now()
	if rest.CreatedAt.IsZero() {
		rest.CreatedAt = now
	}
	rest.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toRestaurantModel(rest)).Error; err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, restaurantID uuid.UUID) (*restaurant.Restaurant, error) {
	var dbModel models.RestaurantModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", restaurantID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, restaurant.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return toRestaurantEntity(&dbModel), nil
}

func (r *RestaurantRepository) ListActive(ctx context.Context) ([]*restaurant.Restaurant, error) {
	var dbModels []models.RestaurantModel
	err := r.db.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	restaurants := make([]*restaurant.Restaurant, len(dbModels))
	for i := range dbModels {
		restaurants[i] = toRestaurantEntity(&dbModels[i])
	}
	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *restaurant.Restaurant) error {
	rest.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.RestaurantModel{}).
		Where("id = ?", rest.ID).
		Updates(map[string]interface{}{
			"name":         rest.Name,
			"description":  rest.Description,
			"cuisine_type": string(rest.CuisineType),
			"address":      rest.Address,
			"phone":        rest.Phone,
			"image_url":    rest.ImageURL,
			"rating":       rest.Rating,
			"is_active":    rest.IsActive,
			"updated_at":   rest.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update restaurant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return restaurant.ErrRestaurantNotFound
	}
	return nil
}

// Delete removes the restaurant and its menu in one transaction.
func (r *RestaurantRepository) Delete(ctx context.Context, restaurantID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete menu items: %w", err)
		}

		result := tx.Where("id = ?", restaurantID).Delete(&models.RestaurantModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete restaurant: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return restaurant.ErrRestaurantNotFound
		}
		return nil
	})
}

func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&models.RestaurantModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return total, nil
}

func toRestaurantModel(r *restaurant.Restaurant) *models.RestaurantModel {
	return &models.RestaurantModel{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CuisineType: string(r.CuisineType),
		Address:     r.Address,
		Phone:       r.Phone,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		IsActive:    r.IsActive,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRestaurantEntity(m *models.RestaurantModel) *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CuisineType: restaurant.CuisineType(m.CuisineType),
		Address:     m.Address,
		Phone:       m.Phone,
		ImageURL:    m.ImageURL,
		Rating:      m.Rating,
		IsActive:    m.IsActive,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
