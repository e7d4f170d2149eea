package order

import (
	"context"
	"errors"

	domainOrder "food-delivery-backend/internal/domain/order"
	domainRestaurant "food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/internal/metrics"
	appErrors "food-delivery-backend/pkg/errors"
	"food-delivery-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements ordering use cases. Callers are expected to have passed
// the verified-email check.
type Service struct {
	orderRepo      domainOrder.Repository
	restaurantRepo domainRestaurant.Repository
	menuRepo       domainRestaurant.MenuRepository
}

func NewService(
	orderRepo domainOrder.Repository,
	restaurantRepo domainRestaurant.Repository,
	menuRepo domainRestaurant.MenuRepository,
) *Service {
	return &Service{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
	}
}

// PlaceOrder prices every line from the current menu and stores the order with its items.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, req *PlaceOrderRequest) (*OrderResponse, error) {
	req.DeliveryAddress = utils.SanitizePlain(req.DeliveryAddress)
	req.Notes = utils.SanitizeOptional(req.Notes, utils.SanitizeText)
	if len(req.Items) == 0 {
		return nil, domainOrder.ErrEmptyOrder
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	r, err := s.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, domainOrder.ErrRestaurantInactive
	}

	menu, err := s.menuItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	o := &domainOrder.Order{
		UserID:          userID,
		RestaurantID:    r.ID,
		Status:          domainOrder.StatusPending,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Items:           make([]domainOrder.Item, 0, len(req.Items)),
	}

	for _, line := range req.Items {
		item, ok := menu[line.MenuItemID]
		if !ok {
			return nil, domainRestaurant.ErrMenuItemNotFound
		}
		if item.RestaurantID != r.ID {
			return nil, domainOrder.ErrMenuItemMismatch
		}
		if !item.IsAvailable {
			return nil, appErrors.NewAppError(appErrors.CodeBadRequest,
				item.Name+" is not available", domainOrder.ErrMenuItemUnavailable)
		}

		o.Items = append(o.Items, domainOrder.Item{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			Price:      item.Price,
		})
	}
	o.TotalAmount = o.CalculateTotal()

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	metrics.RecordOrderPlaced()

	logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("restaurant_id", r.ID.String()),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("items", len(o.Items)),
		zap.String("event", "order_placed"),
	)

	return ToOrderResponse(o), nil
}

// ListMyOrders returns the caller's orders, newest first.
func (s *Service) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, nil
}

// GetOrder returns one of the caller's orders. Orders of other users are reported as missing.
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domainOrder.ErrOrderNotFound
	}
	return ToOrderResponse(o), nil
}

// ListRestaurantOrders returns the orders of a restaurant to its owner or an admin.
func (s *Service) ListRestaurantOrders(ctx context.Context, actor Actor, restaurantID uuid.UUID) ([]*OrderResponse, error) {
	r, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !r.CanBeManagedBy(actor.UserID, actor.IsAdmin) {
		return nil, domainRestaurant.ErrNotOwner
	}

	orders, err := s.orderRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, nil
}

// UpdateStatus advances an order through its lifecycle. The restaurant owner or
// an admin may make any valid transition; the customer may only cancel a
// pending order. Anyone else gets ErrOrderNotFound.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*OrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}
	next := domainOrder.Status(req.Status)

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	managed, err := s.managesRestaurant(ctx, actor, o.RestaurantID)
	if err != nil {
		return nil, err
	}
	isCustomer := o.UserID == actor.UserID
	if !managed && !isCustomer {
		return nil, domainOrder.ErrOrderNotFound
	}

	if err := ValidateStatusTransition(o.Status, next); err != nil {
		return nil, err
	}
	if !managed && !customerMayCancel(o.Status, next) {
		logger.Warn("Order status change by customer rejected",
			zap.String("order_id", o.ID.String()),
			zap.String("user_id", actor.UserID.String()),
			zap.String("status", string(o.Status)),
			zap.String("requested_status", string(next)),
			zap.String("event", "order_status_denied"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeForbidden,
			"Only pending orders can be cancelled by the customer", appErrors.ErrInsufficientPermissions)
	}

	if err := s.orderRepo.UpdateStatus(ctx, o.ID, o.Status, next); err != nil {
		return nil, err
	}
	metrics.RecordOrderTransition(string(next))

	logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("from", string(o.Status)),
		zap.String("to", string(next)),
		zap.String("event", "order_status_changed"),
	)

	o.Status = next
	return ToOrderResponse(o), nil
}

func (s *Service) managesRestaurant(ctx context.Context, actor Actor, restaurantID uuid.UUID) (bool, error) {
	if actor.IsAdmin {
		return true, nil
	}
	r, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if errors.Is(err, domainRestaurant.ErrRestaurantNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.CanBeManagedBy(actor.UserID, false), nil
}

func (s *Service) menuItems(ctx context.Context, lines []OrderItemRequest) (map[uuid.UUID]*domainRestaurant.MenuItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.MenuItemID]; dup {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}

	items, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domainRestaurant.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	if len(byID) != len(ids) {
		return nil, domainRestaurant.ErrMenuItemNotFound
	}
	return byID, nil
}
