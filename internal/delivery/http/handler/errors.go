package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainOrder "food-delivery-backend/internal/domain/order"
	domainRestaurant "food-delivery-backend/internal/domain/restaurant"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/internal/middleware"
	appErrors "food-delivery-backend/pkg/errors"
	"food-delivery-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{appErrors.ErrUserAlreadyExists, http.StatusConflict, "User with this email already exists"},
	{domainRestaurant.ErrHasOrders, http.StatusConflict, "Restaurant has orders and cannot be deleted"},
	{domainOrder.ErrStatusChanged, http.StatusConflict, "Order status changed, please retry"},

	{appErrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{appErrors.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{appErrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},

	{appErrors.ErrEmailNotVerified, http.StatusForbidden, "Please verify your email address before placing orders"},
	{appErrors.ErrInsufficientPermissions, http.StatusForbidden, "Insufficient permissions"},
	{domainRestaurant.ErrNotOwner, http.StatusForbidden, "Only the restaurant owner can modify this restaurant"},

	{appErrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{appErrors.ErrVerificationTokenInvalid, http.StatusNotFound, "Invalid verification token"},
	{domainRestaurant.ErrRestaurantNotFound, http.StatusNotFound, "Restaurant not found"},
	{domainRestaurant.ErrMenuItemNotFound, http.StatusNotFound, "Menu item not found"},
	{domainOrder.ErrOrderNotFound, http.StatusNotFound, "Order not found"},

	{appErrors.ErrVerificationTokenExpired, http.StatusBadRequest, "Verification token has expired"},
	{appErrors.ErrEmailAlreadyVerified, http.StatusBadRequest, "Email already verified"},
	{appErrors.ErrResetTokenInvalid, http.StatusBadRequest, "Invalid password reset token"},
	{appErrors.ErrResetTokenExpired, http.StatusBadRequest, "Password reset token has expired"},
	{appErrors.ErrResetTokenUsed, http.StatusBadRequest, "Password reset token has already been used"},
	{domainOrder.ErrEmptyOrder, http.StatusBadRequest, "Order must contain at least one item"},
	{domainOrder.ErrRestaurantInactive, http.StatusBadRequest, "Restaurant is not accepting orders"},
	{domainOrder.ErrMenuItemMismatch, http.StatusBadRequest, "Menu item does not belong to this restaurant"},
}

// respondWithError translates service errors into the JSON error body.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		respondWithAppError(c, appErr)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			utils.ErrorResponse(c, m.status, m.message)
			return
		}
	}

	_ = c.Error(err)
	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

func respondWithAppError(c *gin.Context, appErr *appErrors.AppError) {
	switch appErr.Code {
	case appErrors.CodeValidation:
		utils.ErrorResponse(c, http.StatusBadRequest, validationMessage(appErr))
	case appErrors.CodeConflict:
		utils.ErrorResponse(c, http.StatusConflict, appErr.Message)
	case appErrors.CodeForbidden:
		utils.ErrorResponse(c, http.StatusForbidden, appErr.Message)
	case appErrors.CodeNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, appErr.Message)
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
	}
}

func validationMessage(appErr *appErrors.AppError) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(appErr.Err, &fieldErrs) {
		return appErr.Message
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, describeFieldError(fe))
	}
	return strings.Join(parts, "; ")
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min", "gte":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
	return false
}

func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" id")
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
	}
	return id, ok
}
