package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-backend/internal/domain/order"
	"food-delivery-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = order.StatusPending
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}

	dbModel := toOrderModel(o)
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(dbModel).Error; err != nil {
			return err
		}
		if len(dbModel.Items) == 0 {
			return nil
		}
		return tx.Create(&dbModel.Items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	var dbModel models.OrderModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toOrderEntity(&dbModel), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var dbModels []models.OrderModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(dbModels))
	for i := range dbModels {
		orders[i] = toOrderEntity(&dbModels[i])
	}
	return orders, nil
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*order.Order, error) {
	var dbModels []models.OrderModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant orders: %w", err)
	}

	orders := make([]*order.Order, len(dbModels))
	for i := range dbModels {
		orders[i] = toOrderEntity(&dbModels[i])
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, next order.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(next),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&total).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if total == 0 {
		return order.ErrOrderNotFound
	}
	return order.ErrStatusChanged
}

func (r *OrderRepository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func toOrderModel(o *order.Order) *models.OrderModel {
	items := make([]models.OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = models.OrderItemModel{
			ID:         item.ID,
			OrderID:    item.OrderID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		}
	}

	return &models.OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		RestaurantID:    o.RestaurantID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *models.OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.Item{
			ID:         item.ID,
			OrderID:    item.OrderID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		}
	}

	return &order.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		RestaurantID:    m.RestaurantID,
		Status:          order.Status(m.Status),
		TotalAmount:     m.TotalAmount,
		DeliveryAddress: m.DeliveryAddress,
		Notes:           m.Notes,
		Items:           items,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
