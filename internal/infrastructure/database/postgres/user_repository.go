package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository on top of gorm.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = user.RoleCustomer
	}

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		// the unique index on email decides races between concurrent registrations
		if isUniqueViolation(err) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, user.ErrUserNotFound
	}
	return r.first(ctx, "email_verification_token = ?", token)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where(query, args...).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) UpdateVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.update(ctx, userID, "verification token", map[string]interface{}{
		"email_verification_token":  token,
		"verification_token_expiry": expiry,
		"updated_at":                time.Now(),
	})
}

// MarkEmailVerified only matches while token is still the stored one, so a
// token is consumed at most once and a rotated token is never cleared.
func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID uuid.UUID, token string) error {
	if token == "" {
		return user.ErrUserNotFound
	}
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ? AND email_verification_token = ?", userID, token).
		Updates(map[string]interface{}{
			"is_email_verified":         true,
			"email_verification_token":  nil,
			"verification_token_expiry": nil,
			"updated_at":                time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update email verification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) update(ctx context.Context, userID uuid.UUID, what string, fields map[string]interface{}) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) CreatePasswordResetToken(ctx context.Context, token *user.PasswordResetToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	token.Used = false

	dbModel := toPasswordResetTokenModel(token)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	return nil
}

func (r *UserRepository) GetPasswordResetToken(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	var dbModel models.PasswordResetTokenModel
	err := r.db.DB.WithContext(ctx).
		Where("token = ?", token).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return toPasswordResetTokenEntity(&dbModel), nil
}

// ConsumeResetToken marks the token used and stores the new password hash in
// one transaction. Only an unused token can be consumed.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PasswordResetTokenModel{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if result.Error != nil {
			return fmt.Errorf("failed to mark reset token as used: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.PasswordResetTokenModel{}).Where("id = ?", tokenID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check reset token: %w", err)
			}
			if count == 0 {
				return user.ErrTokenNotFound
			}
			return user.ErrTokenAlreadyUsed
		}

		result = tx.Model(&models.UserModel{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"password_hashed": passwordHash,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update password: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepository) DeleteStaleResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("used = ? OR expires_at < ?", true, now).
		Delete(&models.PasswordResetTokenModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Helper functions to convert between domain entities and database models

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                      u.ID,
		Email:                   u.Email,
		PasswordHashed:          u.PasswordHashed,
		Name:                    u.Name,
		Role:                    string(u.Role),
		IsEmailVerified:         u.IsEmailVerified,
		EmailVerificationToken:  u.EmailVerificationToken,
		VerificationTokenExpiry: u.VerificationTokenExpiry,
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:                      m.ID,
		Email:                   m.Email,
		PasswordHashed:          m.PasswordHashed,
		Name:                    m.Name,
		Role:                    user.Role(m.Role),
		IsEmailVerified:         m.IsEmailVerified,
		EmailVerificationToken:  m.EmailVerificationToken,
		VerificationTokenExpiry: m.VerificationTokenExpiry,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func toPasswordResetTokenModel(t *user.PasswordResetToken) *models.PasswordResetTokenModel {
	return &models.PasswordResetTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}

func toPasswordResetTokenEntity(m *models.PasswordResetTokenModel) *user.PasswordResetToken {
	return &user.PasswordResetToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}
}
