package auth

import (
	userUsecase "food-delivery-backend/internal/usecase/user"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse is returned by register and login. VerificationEmailSent is only
// set on registration.
type AuthResponse struct {
	AccessToken           string                    `json:"access_token"`
	User                  *userUsecase.UserResponse `json:"user"`
	VerificationEmailSent *bool                     `json:"verificationEmailSent,omitempty"`
}

type VerifyEmailResponse struct {
	Message  string `json:"message"`
	Verified bool   `json:"verified"`
}

type ResendVerificationResponse struct {
	Message               string `json:"message"`
	VerificationEmailSent bool   `json:"verificationEmailSent"`
}

type VerificationStatusResponse struct {
	IsEmailVerified bool `json:"isEmailVerified"`
}
