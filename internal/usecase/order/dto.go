package order

import (
	"time"

	domainOrder "food-delivery-backend/internal/domain/order"
	"food-delivery-backend/pkg/utils"

	"github.com/google/uuid"
)

func init() {
	statuses := make([]string, 0, len(validTransitions))
	for status := range validTransitions {
		statuses = append(statuses, string(status))
	}
	utils.RegisterEnum("order_status", statuses...)
}

// Actor is the authenticated caller changing an order.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type OrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gte=1,lte=100"`
}

type PlaceOrderRequest struct {
	RestaurantID    uuid.UUID          `json:"restaurantId" validate:"required"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required,min=5,max=500"`
	Notes           *string            `json:"notes" validate:"omitempty,max=1000"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type OrderItemResponse struct {
	ID         uuid.UUID `json:"id"`
	MenuItemID uuid.UUID `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	Subtotal   float64   `json:"subtotal"`
}

type OrderResponse struct {
	ID                 uuid.UUID            `json:"id"`
	UserID             uuid.UUID            `json:"userId"`
	RestaurantID       uuid.UUID            `json:"restaurantId"`
	Status             domainOrder.Status   `json:"status"`
	TotalAmount        float64              `json:"totalAmount"`
	DeliveryAddress    string               `json:"deliveryAddress"`
	Notes              *string              `json:"notes"`
	Items              []*OrderItemResponse `json:"items"`
	AllowedTransitions []domainOrder.Status `json:"allowedTransitions"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

func ToOrderResponse(o *domainOrder.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]*OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = &OrderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Subtotal:   item.Subtotal(),
		}
	}

	return &OrderResponse{
		ID:                 o.ID,
		UserID:             o.UserID,
		RestaurantID:       o.RestaurantID,
		Status:             o.Status,
		TotalAmount:        o.TotalAmount,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		Items:              items,
		AllowedTransitions: GetAllowedTransitions(o.Status),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
