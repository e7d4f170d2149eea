package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email                   string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed          string     `gorm:"type:varchar(255);not null"`
	Name                    string     `gorm:"type:varchar(255);not null"`
	Role                    string     `gorm:"type:varchar(50);not null;default:'customer'"`
	IsEmailVerified         bool       `gorm:"not null"`
	EmailVerificationToken  *string    `gorm:"type:varchar(128);index"`
	VerificationTokenExpiry *time.Time `gorm:"type:timestamptz"`
	CreatedAt               time.Time  `gorm:"not null"`
	UpdatedAt               time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PasswordResetTokenModel represents the database model for PasswordResetToken
type PasswordResetTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
