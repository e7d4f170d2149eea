package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	// UpdateVerificationToken overwrites any previously issued token.
	UpdateVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	// MarkEmailVerified sets the verified flag and clears the token fields if
	// token is still the user's current one, else returns ErrUserNotFound.
	MarkEmailVerified(ctx context.Context, userID uuid.UUID, token string) error

	CreatePasswordResetToken(ctx context.Context, token *PasswordResetToken) error
	GetPasswordResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	// ConsumeResetToken atomically spends an unused token and sets the new
	// password hash. Returns ErrTokenAlreadyUsed if the token was spent first.
	ConsumeResetToken(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error
	DeleteStaleResetTokens(ctx context.Context, now time.Time) (int64, error)
}
