package user

import (
	"time"

	domainUser "food-delivery-backend/internal/domain/user"

	"github.com/google/uuid"
)

// UserResponse is the public projection of an account. The password hash and
// verification token never leave the service.
type UserResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Role            domainUser.Role `json:"role"`
	IsEmailVerified bool            `json:"isEmailVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
