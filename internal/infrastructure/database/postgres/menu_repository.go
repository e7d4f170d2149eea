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

type MenuRepository struct {
	db *DB
}

func NewMenuRepository(db *DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, item *restaurant.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toMenuItemModel(item)).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, itemID uuid.UUID) (*restaurant.MenuItem, error) {
	var dbModel models.MenuItemModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", itemID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, restaurant.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return toMenuItemEntity(&dbModel), nil
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]*restaurant.MenuItem, error) {
	db := r.db.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		db = db.Where("is_available = ?", true)
	}

	var dbModels []models.MenuItemModel
	if err := db.Order("category ASC, name ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return toMenuItemEntities(dbModels), nil
}

func (r *MenuRepository) GetByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*restaurant.MenuItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var dbModels []models.MenuItemModel
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", itemIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return toMenuItemEntities(dbModels), nil
}

func (r *MenuRepository) Update(ctx context.Context, item *restaurant.MenuItem) error {
	item.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"description":  item.Description,
			"price":        item.Price,
			"category":     string(item.Category),
			"image_url":    item.ImageURL,
			"is_available": item.IsAvailable,
			"updated_at":   item.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return restaurant.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", itemID).Delete(&models.MenuItemModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return restaurant.ErrMenuItemNotFound
	}
	return nil
}

func toMenuItemModel(i *restaurant.MenuItem) *models.MenuItemModel {
	return &models.MenuItemModel{
		ID:           i.ID,
		RestaurantID: i.RestaurantID,
		Name:         i.Name,
		Description:  i.Description,
		Price:        i.Price,
		Category:     string(i.Category),
		ImageURL:     i.ImageURL,
		IsAvailable:  i.IsAvailable,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func toMenuItemEntity(m *models.MenuItemModel) *restaurant.MenuItem {
	return &restaurant.MenuItem{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Category:     restaurant.MenuCategory(m.Category),
		ImageURL:     m.ImageURL,
		IsAvailable:  m.IsAvailable,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMenuItemEntities(dbModels []models.MenuItemModel) []*restaurant.MenuItem {
	items := make([]*restaurant.MenuItem, len(dbModels))
	for i := range dbModels {
		items[i] = toMenuItemEntity(&dbModels[i])
	}
	return items
}
