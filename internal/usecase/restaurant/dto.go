package restaurant

import (
	"time"

	domainRestaurant "food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/pkg/utils"

	"github.com/google/uuid"
)

func init() {
	cuisines := make([]string, len(domainRestaurant.CuisineTypes))
	for i, c := range domainRestaurant.CuisineTypes {
		cuisines[i] = string(c)
	}
	utils.RegisterEnum("cuisine_type", cuisines...)

	categories := make([]string, len(domainRestaurant.MenuCategories))
	for i, c := range domainRestaurant.MenuCategories {
		categories[i] = string(c)
	}
	utils.RegisterEnum("menu_category", categories...)
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type CreateRestaurantRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	CuisineType string   `json:"cuisineType" validate:"required,cuisine_type"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	Phone       *string  `json:"phone" validate:"omitempty,phone"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive    *bool    `json:"isActive"`
}

type UpdateRestaurantRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	CuisineType *string  `json:"cuisineType" validate:"omitempty,cuisine_type"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	Phone       *string  `json:"phone" validate:"omitempty,phone"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive    *bool    `json:"isActive"`
}

type CreateMenuItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=100000"`
	Category    string  `json:"category" validate:"required,menu_category"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url,max=1024"`
	IsAvailable *bool   `json:"isAvailable"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0,lte=100000"`
	Category    *string  `json:"category" validate:"omitempty,menu_category"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url,max=1024"`
	IsAvailable *bool    `json:"isAvailable"`
}

type RestaurantResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CuisineType string     `json:"cuisineType"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
	ImageURL    *string    `json:"imageUrl"`
	Rating      float64    `json:"rating"`
	IsActive    bool       `json:"isActive"`
	OwnerID     *uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type MenuItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"imageUrl"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToRestaurantResponse(r *domainRestaurant.Restaurant) *RestaurantResponse {
	if r == nil {
		return nil
	}
	return &RestaurantResponse{
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

func ToMenuItemResponse(i *domainRestaurant.MenuItem) *MenuItemResponse {
	if i == nil {
		return nil
	}
	return &MenuItemResponse{
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
