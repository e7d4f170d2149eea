package order

import (
	"fmt"

	domainOrder "food-delivery-backend/internal/domain/order"
	appErrors "food-delivery-backend/pkg/errors"
)

// State machine for order status transitions
var validTransitions = map[domainOrder.Status][]domainOrder.Status{
	domainOrder.StatusPending: {
		domainOrder.StatusConfirmed,
		domainOrder.StatusCancelled,
	},
	domainOrder.StatusConfirmed: {
		domainOrder.StatusPreparing,
		domainOrder.StatusCancelled,
	},
	domainOrder.StatusPreparing: {
		domainOrder.StatusOutForDelivery,
	},
	domainOrder.StatusOutForDelivery: {
		domainOrder.StatusDelivered,
	},
	domainOrder.StatusDelivered: {
		// Terminal state - no transitions
	},
	domainOrder.StatusCancelled: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(current, next domainOrder.Status) error {
	allowed, exists := validTransitions[current]
	if !exists {
		return appErrors.NewAppError(
			appErrors.CodeBadRequest,
			fmt.Sprintf("Unknown current status: %s", current),
			domainOrder.ErrInvalidStatusTransition,
		)
	}

	for _, status := range allowed {
		if next == status {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeBadRequest,
		fmt.Sprintf("Cannot transition from %s to %s", current, next),
		domainOrder.ErrInvalidStatusTransition,
	)
}

// GetAllowedTransitions returns the statuses an order can move to next.
// Terminal statuses yield an empty, non-nil slice.
func GetAllowedTransitions(current domainOrder.Status) []domainOrder.Status {
	next := make([]domainOrder.Status, len(validTransitions[current]))
	copy(next, validTransitions[current])
	return next
}

// customerMayCancel reports whether the customer who placed an order can still cancel it.
func customerMayCancel(current, next domainOrder.Status) bool {
	return current == domainOrder.StatusPending && next == domainOrder.StatusCancelled
}
