package models

import (
	"time"

	"github.com/google/uuid"
)

type RestaurantModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description *string         `gorm:"type:text"`
	CuisineType string          `gorm:"type:varchar(32);not null;index"`
	Address     *string         `gorm:"type:varchar(500)"`
	Phone       *string         `gorm:"type:varchar(32)"`
	ImageURL    *string         `gorm:"type:varchar(1024)"`
	Rating      float64         `gorm:"type:numeric(5,2);not null"`
	IsActive    bool            `gorm:"not null;index"`
	OwnerID     *uuid.UUID      `gorm:"type:uuid;index"`
	MenuItems   []MenuItemModel `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (RestaurantModel) TableName() string {
	return "restaurants"
}

type MenuItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  *string   `gorm:"type:text"`
	Price        float64   `gorm:"type:numeric(10,2);not null"`
	Category     string    `gorm:"type:varchar(32);not null"`
	ImageURL     *string   `gorm:"type:varchar(1024)"`
	IsAvailable  bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (MenuItemModel) TableName() string {
	return "menu_items"
}
