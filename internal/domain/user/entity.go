package user

import (
	"time"

	"github.com/google/uuid"
)

// Role of an account.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleAdmin           Role = "admin"
)

// VerificationTokenTTL is the validity window of an email verification token.
const VerificationTokenTTL = 24 * time.Hour

// PasswordResetTokenTTL is the validity window of a password reset token.
const PasswordResetTokenTTL = 24 * time.Hour

// User represents a user entity in the domain
type User struct {
	ID                      uuid.UUID
	Email                   string
	PasswordHashed          string
	Name                    string
	Role                    Role
	IsEmailVerified         bool
	EmailVerificationToken  *string
	VerificationTokenExpiry *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VerificationExpired reports whether the stored verification token is past its expiry at now.
// A token without an expiry is treated as expired.
func (u *User) VerificationExpired(now time.Time) bool {
	if u.VerificationTokenExpiry == nil {
		return true
	}
	return now.After(*u.VerificationTokenExpiry)
}

// PasswordResetToken represents a password reset token entity
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
