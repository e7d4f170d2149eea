package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status          string           `gorm:"type:varchar(32);not null"`
	TotalAmount     float64          `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress string           `gorm:"type:varchar(500);not null"`
	Notes           *string          `gorm:"type:text"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `gorm:"not null;index"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel stores the price paid; it is never recomputed from menu_items.
type OrderItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null"`
	Price      float64   `gorm:"type:numeric(10,2);not null;<-:create"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
