// Package seed fills an empty database with demo restaurants and menus.
package seed

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/pkg/utils"

	"go.uber.org/zap"
)

type dish struct {
	name        string
	description string
	price       float64
	category    restaurant.MenuCategory
}

type demoRestaurant struct {
	name        string
	description string
	cuisine     restaurant.CuisineType
	address     string
	phone       string
	rating      float64
	menu        []dish
}

var demoRestaurants = []demoRestaurant{
	{
		name:        "Pizza Palace",
		description: "Authentic Italian pizzas with fresh ingredients and traditional recipes.",
		cuisine:     restaurant.CuisinePizza,
		address:     "123 Main Street, New York",
		phone:       "+1-555-0101",
		rating:      4.5,
		menu: []dish{
			{"Garlic Knots", "Six knots brushed with garlic butter.", 5.99, restaurant.CategoryAppetizer},
			{"Margherita", "Tomato, mozzarella and basil.", 12.99, restaurant.CategoryMainCourse},
			{"Pepperoni", "Classic pepperoni with extra cheese.", 14.49, restaurant.CategoryMainCourse},
			{"Tiramisu", "Espresso soaked ladyfingers with mascarpone.", 6.5, restaurant.CategoryDessert},
		},
	},
	{
		name:        "Dragon Garden",
		description: "Traditional Chinese cuisine with modern twists. Best dumplings in town!",
		cuisine:     restaurant.CuisineChinese,
		address:     "456 Chinatown Ave, New York",
		phone:       "+1-555-0102",
		rating:      4.3,
		menu: []dish{
			{"Pork Dumplings", "Eight steamed dumplings with chili oil.", 7.5, restaurant.CategoryAppetizer},
			{"Kung Pao Chicken", "Wok fried chicken with peanuts and peppers.", 13.25, restaurant.CategoryMainCourse},
			{"Jasmine Tea", "Hot pot of jasmine tea.", 2.5, restaurant.CategoryDrink},
		},
	},
	{
		name:        "Tokyo Sushi Bar",
		description: "Fresh sashimi and creative sushi rolls. Experience authentic Japanese cuisine.",
		cuisine:     restaurant.CuisineJapanese,
		address:     "789 East Side, New York",
		phone:       "+1-555-0103",
		rating:      4.7,
		menu: []dish{
			{"Edamame", "Sea salt steamed soybeans.", 4.5, restaurant.CategoryAppetizer},
			{"Salmon Nigiri Set", "Eight pieces of salmon nigiri.", 16.0, restaurant.CategoryMainCourse},
			{"Dragon Roll", "Eel, cucumber and avocado.", 14.75, restaurant.CategoryMainCourse},
		},
	},
	{
		name:        "Taco Fiesta",
		description: "Colorful and flavorful Mexican street food. Burritos, tacos, and more!",
		cuisine:     restaurant.CuisineMexican,
		address:     "321 West Boulevard, New York",
		phone:       "+1-555-0104",
		rating:      4.4,
		menu: []dish{
			{"Chips and Guacamole", "Made to order guacamole.", 6.25, restaurant.CategoryAppetizer},
			{"Carnitas Tacos", "Three slow cooked pork tacos.", 10.5, restaurant.CategoryMainCourse},
			{"Horchata", "Cinnamon rice drink.", 3.25, restaurant.CategoryDrink},
		},
	},
	{
		name:        "Spice of India",
		description: "Rich flavors and aromatic spices. Traditional curry dishes and biryanis.",
		cuisine:     restaurant.CuisineIndian,
		address:     "654 Curry Lane, New York",
		phone:       "+1-555-0105",
		rating:      4.6,
		menu: []dish{
			{"Samosa", "Two potato and pea samosas.", 5.0, restaurant.CategoryAppetizer},
			{"Chicken Tikka Masala", "Served with basmati rice.", 15.5, restaurant.CategoryMainCourse},
			{"Garlic Naan", "Baked in the tandoor.", 3.5, restaurant.CategorySides},
		},
	},
	{
		name:        "Burger Junction",
		description: "Juicy burgers made with premium beef and fresh toppings. Classic American.",
		cuisine:     restaurant.CuisineBurger,
		address:     "147 Fast Food St, New York",
		phone:       "+1-555-0106",
		rating:      4.2,
		menu: []dish{
			{"Classic Cheeseburger", "Beef patty, cheddar, pickles.", 11.0, restaurant.CategoryMainCourse},
			{"Fries", "Hand cut and double fried.", 4.0, restaurant.CategorySides},
			{"Burger Combo", "Cheeseburger, fries and a soda.", 15.99, restaurant.CategoryCombo},
		},
	},
	{
		name:        "Riverside Thai",
		description: "Authentic Thai flavors with aromatic herbs and spicy curries.",
		cuisine:     restaurant.CuisineThai,
		address:     "258 River Road, New York",
		phone:       "+1-555-0107",
		rating:      4.5,
		menu: []dish{
			{"Pad Thai", "Rice noodles with shrimp and peanuts.", 13.5, restaurant.CategoryMainCourse},
			{"Green Curry", "Coconut curry with chicken and basil.", 14.0, restaurant.CategoryMainCourse},
			{"Thai Iced Tea", "Sweetened with condensed milk.", 3.75, restaurant.CategoryDrink},
		},
	},
	{
		name:        "Le Bistro Francais",
		description: "Fine French dining with elegant dishes and exquisite presentation.",
		cuisine:     restaurant.CuisineFrench,
		address:     "369 Uptown Ave, New York",
		phone:       "+1-555-0108",
		rating:      4.8,
		menu: []dish{
			{"French Onion Soup", "Gratinéed with gruyère.", 9.0, restaurant.CategoryAppetizer},
			{"Coq au Vin", "Chicken braised in red wine.", 24.0, restaurant.CategoryMainCourse},
			{"Crème Brûlée", "Vanilla custard, burnt sugar.", 8.5, restaurant.CategoryDessert},
		},
	},
	{
		name:        "Mediterranean Delight",
		description: "Fresh Mediterranean flavors with healthy and delicious options.",
		cuisine:     restaurant.CuisineMediterranean,
		address:     "741 Coastal Drive, New York",
		phone:       "+1-555-0109",
		rating:      4.4,
		menu: []dish{
			{"Hummus Plate", "With warm pita.", 7.0, restaurant.CategoryAppetizer},
			{"Lamb Souvlaki", "Grilled skewers with tzatziki.", 17.5, restaurant.CategoryMainCourse},
		},
	},
	{
		name:        "Ocean Fresh Seafood",
		description: "Daily catch seafood restaurant. Freshest fish in the city.",
		cuisine:     restaurant.CuisineSeafood,
		address:     "852 Harbor View, New York",
		phone:       "+1-555-0110",
		rating:      4.6,
		menu: []dish{
			{"Clam Chowder", "New England style.", 8.0, restaurant.CategoryAppetizer},
			{"Grilled Salmon", "With lemon butter and greens.", 22.0, restaurant.CategoryMainCourse},
		},
	},
	{
		name:        "Green Garden",
		description: "100% vegetarian and vegan options. Healthy and delicious plant-based meals.",
		cuisine:     restaurant.CuisineVegetarian,
		address:     "963 Health Way, New York",
		phone:       "+1-555-0111",
		rating:      4.3,
		menu: []dish{
			{"Buddha Bowl", "Quinoa, roasted vegetables, tahini.", 12.5, restaurant.CategoryMainCourse},
			{"Green Smoothie", "Kale, apple and ginger.", 5.5, restaurant.CategoryDrink},
		},
	},
	{
		name:        "Asia Fusion",
		description: "Modern Asian cuisine blending flavors from across the continent.",
		cuisine:     restaurant.CuisineAsian,
		address:     "159 Fusion Blvd, New York",
		phone:       "+1-555-0112",
		rating:      4.5,
		menu: []dish{
			{"Bao Buns", "Two pork belly bao.", 8.5, restaurant.CategoryAppetizer},
			{"Korean Fried Chicken", "Gochujang glaze, sesame.", 15.0, restaurant.CategoryMainCourse},
			{"Mochi Trio", "Matcha, mango and strawberry.", 6.0, restaurant.CategoryDessert},
		},
	},
}

type Seeder struct {
	users       user.Repository
	restaurants restaurant.Repository
	menu        restaurant.MenuRepository
}

func NewSeeder(users user.Repository, restaurants restaurant.Repository, menu restaurant.MenuRepository) *Seeder {
	return &Seeder{users: users, restaurants: restaurants, menu: menu}
}

// SeedAdmin creates a verified admin account once. Empty credentials skip it.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	email = utils.SanitizeEmail(email)
	if email == "" || password == "" {
		logger.Info("Skipping admin seed: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return false, nil
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		logger.Info("Admin already exists", zap.String("email", email))
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Email:           email,
		PasswordHashed:  hash,
		Name:            "Admin",
		Role:            user.RoleAdmin,
		IsEmailVerified: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Info("Seeded admin account",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", email),
		zap.String("event", "admin_seeded"),
	)
	return true, nil
}

// Run inserts the demo data unless restaurants already exist. It returns the
// number of restaurants created.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	count, err := s.restaurants.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		logger.Info("Restaurant data already seeded", zap.Int64("restaurants", count))
		return 0, nil
	}

	for _, demo := range demoRestaurants {
		r := &restaurant.Restaurant{
			Name:        demo.name,
			Description: stringPtr(demo.description),
			CuisineType: demo.cuisine,
			Address:     stringPtr(demo.address),
			Phone:       stringPtr(demo.phone),
			Rating:      demo.rating,
			IsActive:    true,
		}
		if err := s.restaurants.Create(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to seed restaurant %q: %w", demo.name, err)
		}

		for _, d := range demo.menu {
			item := &restaurant.MenuItem{
				RestaurantID: r.ID,
				Name:         d.name,
				Description:  stringPtr(d.description),
				Price:        d.price,
				Category:     d.category,
				IsAvailable:  true,
			}
			if err := s.menu.Create(ctx, item); err != nil {
				return 0, fmt.Errorf("failed to seed menu item %q: %w", d.name, err)
			}
		}

		logger.Info("Seeded restaurant",
			zap.String("name", demo.name),
			zap.Int("menu_items", len(demo.menu)),
		)
	}

	logger.Info("Restaurant seeding completed", zap.Int("restaurants", len(demoRestaurants)))
	return len(demoRestaurants), nil
}

func stringPtr(s string) *string {
	return &s
}
