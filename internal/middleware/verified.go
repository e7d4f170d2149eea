package middleware

import (
	"errors"
	"net/http"

	domainUser "food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const emailNotVerifiedMessage = "Please verify your email address before placing orders"

// VerifiedEmailMiddleware must run after AuthMiddleware. The verification flag
// is read from the store on every request, so a user who verifies mid-session
// is let through without logging in again.
func VerifiedEmailMiddleware(userRepo domainUser.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}
			logger.Error("Failed to load user for verification check",
				zap.String("request_id", GetRequestID(c)),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}

		if !user.IsEmailVerified {
			logger.Warn("Unverified user blocked",
				zap.String("request_id", GetRequestID(c)),
				zap.String("user_id", userID.String()),
				zap.String("path", c.Request.URL.Path),
				zap.String("event", "unverified_access_denied"),
			)
			utils.ErrorResponse(c, http.StatusForbidden, emailNotVerifiedMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}
