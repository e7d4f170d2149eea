package order

import (
	"time"

	"github.com/google/uuid"
)

// Status of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// IsTerminal reports whether an order in this status can still change.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order represents a customer order placed with a single restaurant.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	RestaurantID    uuid.UUID
	Status          Status
	TotalAmount     float64
	DeliveryAddress string
	Notes           *string
	Items           []Item
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item is a line of an order. Price is the menu price when the order was placed.
type Item struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Quantity   int
	Price      float64
}

// Subtotal returns price times quantity.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CalculateTotal sums the subtotals of all items, rounded to cents.
func (o *Order) CalculateTotal() float64 {
	var cents int64
	for _, item := range o.Items {
		cents += int64(item.Price*100+0.5) * int64(item.Quantity)
	}
	return float64(cents) / 100
}
