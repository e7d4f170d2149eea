package user

import (
	"context"
	"errors"

	domainUser "food-delivery-backend/internal/domain/user"
	appErrors "food-delivery-backend/pkg/errors"

	"github.com/google/uuid"
)

// Service implements profile use cases.
type Service struct {
	userRepo domainUser.Repository
}

func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	return ToUserResponse(u), nil
}
