package restaurant

import (
	"context"
	"fmt"

	domainOrder "food-delivery-backend/internal/domain/order"
	domainRestaurant "food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/internal/logger"
	appErrors "food-delivery-backend/pkg/errors"
	"food-delivery-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements restaurant and menu use cases.
type Service struct {
	restaurantRepo domainRestaurant.Repository
	menuRepo       domainRestaurant.MenuRepository
	orderRepo      domainOrder.Repository
}

func NewService(
	restaurantRepo domainRestaurant.Repository,
	menuRepo domainRestaurant.MenuRepository,
	orderRepo domainOrder.Repository,
) *Service {
	return &Service{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		orderRepo:      orderRepo,
	}
}

// List returns active restaurants, newest first.
func (s *Service) List(ctx context.Context) ([]*RestaurantResponse, error) {
	restaurants, err := s.restaurantRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		responses[i] = ToRestaurantResponse(r)
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, restaurantID uuid.UUID) (*RestaurantResponse, error) {
	r, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return ToRestaurantResponse(r), nil
}

// Create stores a restaurant owned by the caller.
func (s *Service) Create(ctx context.Context, actor Actor, req *CreateRestaurantRequest) (*RestaurantResponse, error) {
	req.Name = utils.SanitizePlain(req.Name)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	req.Address = utils.SanitizeOptional(req.Address, utils.SanitizePlain)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	ownerID := actor.UserID
	r := &domainRestaurant.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		CuisineType: domainRestaurant.CuisineType(req.CuisineType),
		Address:     req.Address,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		OwnerID:     &ownerID,
	}
	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}

	if err := s.restaurantRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("Restaurant created",
		zap.String("restaurant_id", r.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("event", "restaurant_created"),
	)

	return ToRestaurantResponse(r), nil
}

func (s *Service) Update(ctx context.Context, actor Actor, restaurantID uuid.UUID, req *UpdateRestaurantRequest) (*RestaurantResponse, error) {
	req.Name = utils.SanitizeOptional(req.Name, utils.SanitizePlain)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	req.Address = utils.SanitizeOptional(req.Address, utils.SanitizePlain)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	r, err := s.managedRestaurant(ctx, actor, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Description != nil {
		r.Description = req.Description
	}
	if req.CuisineType != nil {
		r.CuisineType = domainRestaurant.CuisineType(*req.CuisineType)
	}
	if req.Address != nil {
		r.Address = req.Address
	}
	if req.Phone != nil {
		r.Phone = req.Phone
	}
	if req.ImageURL != nil {
		r.ImageURL = req.ImageURL
	}
	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}

	if err := s.restaurantRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	return ToRestaurantResponse(r), nil
}

// Delete removes a restaurant and its menu. Restaurants referenced by orders are kept.
func (s *Service) Delete(ctx context.Context, actor Actor, restaurantID uuid.UUID) error {
	if _, err := s.managedRestaurant(ctx, actor, restaurantID); err != nil {
		return err
	}

	orders, err := s.orderRepo.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if orders > 0 {
		return domainRestaurant.ErrHasOrders
	}

	if err := s.restaurantRepo.Delete(ctx, restaurantID); err != nil {
		return err
	}

	logger.Info("Restaurant deleted",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("event", "restaurant_deleted"),
	)
	return nil
}

// ListMenu returns the menu of a restaurant; unavailable items only when includeUnavailable is set.
func (s *Service) ListMenu(ctx context.Context, restaurantID uuid.UUID, includeUnavailable bool) ([]*MenuItemResponse, error) {
	if _, err := s.restaurantRepo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID, !includeUnavailable)
	if err != nil {
		return nil, err
	}

	responses := make([]*MenuItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToMenuItemResponse(item)
	}
	return responses, nil
}

func (s *Service) CreateMenuItem(ctx context.Context, actor Actor, restaurantID uuid.UUID, req *CreateMenuItemRequest) (*MenuItemResponse, error) {
	req.Name = utils.SanitizePlain(req.Name)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if _, err := s.managedRestaurant(ctx, actor, restaurantID); err != nil {
		return nil, err
	}

	item := &domainRestaurant.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     domainRestaurant.MenuCategory(req.Category),
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, actor Actor, restaurantID, itemID uuid.UUID, req *UpdateMenuItemRequest) (*MenuItemResponse, error) {
	req.Name = utils.SanitizeOptional(req.Name, utils.SanitizePlain)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	item, err := s.managedMenuItem(ctx, actor, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = domainRestaurant.MenuCategory(*req.Category)
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, actor Actor, restaurantID, itemID uuid.UUID) error {
	if _, err := s.managedMenuItem(ctx, actor, restaurantID, itemID); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, itemID)
}

func (s *Service) managedRestaurant(ctx context.Context, actor Actor, restaurantID uuid.UUID) (*domainRestaurant.Restaurant, error) {
	r, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if !r.CanBeManagedBy(actor.UserID, actor.IsAdmin) {
		logger.Warn("Restaurant modification by non-owner",
			zap.String("restaurant_id", restaurantID.String()),
			zap.String("user_id", actor.UserID.String()),
			zap.String("event", "restaurant_access_denied"),
		)
		return nil, domainRestaurant.ErrNotOwner
	}
	return r, nil
}

func (s *Service) managedMenuItem(ctx context.Context, actor Actor, restaurantID, itemID uuid.UUID) (*domainRestaurant.MenuItem, error) {
	if _, err := s.managedRestaurant(ctx, actor, restaurantID); err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, domainRestaurant.ErrMenuItemNotFound
	}
	return item, nil
}
