package order

import (
	"errors"
	"testing"

	domainOrder "food-delivery-backend/internal/domain/order"
	appErrors "food-delivery-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		from    domainOrder.Status
		to      domainOrder.Status
		wantErr bool
	}{
		{domainOrder.StatusPending, domainOrder.StatusConfirmed, false},
		{domainOrder.StatusPending, domainOrder.StatusCancelled, false},
		{domainOrder.StatusConfirmed, domainOrder.StatusPreparing, false},
		{domainOrder.StatusConfirmed, domainOrder.StatusCancelled, false},
		{domainOrder.StatusPreparing, domainOrder.StatusOutForDelivery, false},
		{domainOrder.StatusOutForDelivery, domainOrder.StatusDelivered, false},

		{domainOrder.StatusPending, domainOrder.StatusDelivered, true},
		{domainOrder.StatusPreparing, domainOrder.StatusCancelled, true},
		{domainOrder.StatusDelivered, domainOrder.StatusCancelled, true},
		{domainOrder.StatusCancelled, domainOrder.StatusPending, true},
		{domainOrder.StatusPending, domainOrder.StatusPending, true},
		{domainOrder.Status("lost"), domainOrder.StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateStatusTransition(tt.from, tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, domainOrder.ErrInvalidStatusTransition)
			var appErr *appErrors.AppError
			if assert.True(t, errors.As(err, &appErr)) {
				assert.Equal(t, appErrors.CodeBadRequest, appErr.Code)
			}
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for status, next := range validTransitions {
		if status.IsTerminal() {
			assert.Empty(t, next, status)
		} else {
			assert.NotEmpty(t, next, status)
		}
	}
	assert.Empty(t, GetAllowedTransitions(domainOrder.StatusDelivered))
	assert.NotNil(t, GetAllowedTransitions(domainOrder.StatusDelivered))
	assert.Len(t, GetAllowedTransitions(domainOrder.StatusPending), 2)

	// callers get a copy
	next := GetAllowedTransitions(domainOrder.StatusPending)
	next[0] = domainOrder.StatusDelivered
	assert.Equal(t, domainOrder.StatusConfirmed, validTransitions[domainOrder.StatusPending][0])
}
