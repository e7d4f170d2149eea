package restaurant

import (
	"time"

	"github.com/google/uuid"
)

// CuisineType classifies a restaurant.
type CuisineType string

const (
	CuisineItalian       CuisineType = "italian"
	CuisineChinese       CuisineType = "chinese"
	CuisineJapanese      CuisineType = "japanese"
	CuisineMexican       CuisineType = "mexican"
	CuisineIndian        CuisineType = "indian"
	CuisineAmerican      CuisineType = "american"
	CuisineThai          CuisineType = "thai"
	CuisineFrench        CuisineType = "french"
	CuisineMediterranean CuisineType = "mediterranean"
	CuisineSeafood       CuisineType = "seafood"
	CuisineVegetarian    CuisineType = "vegetarian"
	CuisinePizza         CuisineType = "pizza"
	CuisineBurger        CuisineType = "burger"
	CuisineAsian         CuisineType = "asian"
	CuisineFastFood      CuisineType = "fast_food"
)

// CuisineTypes lists every valid cuisine.
var CuisineTypes = []CuisineType{
	CuisineItalian, CuisineChinese, CuisineJapanese, CuisineMexican, CuisineIndian,
	CuisineAmerican, CuisineThai, CuisineFrench, CuisineMediterranean, CuisineSeafood,
	CuisineVegetarian, CuisinePizza, CuisineBurger, CuisineAsian, CuisineFastFood,
}

// MenuCategory classifies a menu item.
type MenuCategory string

const (
	CategoryAppetizer  MenuCategory = "appetizer"
	CategoryMainCourse MenuCategory = "main_course"
	CategoryDessert    MenuCategory = "dessert"
	CategoryDrink      MenuCategory = "drink"
	CategorySides      MenuCategory = "sides"
	CategoryCombo      MenuCategory = "combo"
)

var MenuCategories = []MenuCategory{
	CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryDrink, CategorySides, CategoryCombo,
}

// Restaurant represents a restaurant entity in the domain
type Restaurant struct {
	ID          uuid.UUID
	Name        string
	Description *string
	CuisineType CuisineType
	Address     *string
	Phone       *string
	ImageURL    *string
	Rating      float64
	IsActive    bool
	OwnerID     *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanBeManagedBy reports whether the given account may modify the restaurant.
func (r *Restaurant) CanBeManagedBy(userID uuid.UUID, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return r.OwnerID != nil && *r.OwnerID == userID
}

// MenuItem represents a dish offered by a restaurant.
type MenuItem struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Description  *string
	Price        float64
	Category     MenuCategory
	ImageURL     *string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
