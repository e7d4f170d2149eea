package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-backend/internal/config"
	domainUser "food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/logger"
	userUsecase "food-delivery-backend/internal/usecase/user"
	appErrors "food-delivery-backend/pkg/errors"
	"food-delivery-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_email_sender.go -package=mocks . EmailSender

// EmailSender delivers account emails.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}

// Service implements registration, login and email verification.
type Service struct {
	userRepo domainUser.Repository
	sender   EmailSender
	config   *config.Config
	now      func() time.Time
}

func NewService(userRepo domainUser.Repository, sender EmailSender, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		sender:   sender,
		config:   cfg,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizePlain(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, expiry, err := s.newVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &domainUser.User{
		Email:                   req.Email,
		PasswordHashed:          hashedPassword,
		Name:                    req.Name,
		Role:                    domainUser.RoleCustomer,
		EmailVerificationToken:  &token,
		VerificationTokenExpiry: &expiry,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	sent := true
	if err := s.sender.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		sent = false
		logger.Warn("Verification email could not be sent",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "verification_email_failed"),
			zap.Error(err),
		)
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("verification_email_sent", sent),
		zap.String("event", "user_registered"),
	)

	return &AuthResponse{
		AccessToken:           accessToken,
		User:                  userUsecase.ToUserResponse(user),
		VerificationEmailSent: &sent,
	}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		AccessToken: accessToken,
		User:        userUsecase.ToUserResponse(user),
	}, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) (*VerifyEmailResponse, error) {
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Email verification with unknown token",
				zap.String("event", "verification_failed_invalid_token"),
			)
			return nil, appErrors.ErrVerificationTokenInvalid
		}
		return nil, err
	}

	if user.VerificationExpired(s.now()) {
		logger.Warn("Email verification with expired token",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "verification_failed_expired_token"),
		)
		return nil, appErrors.ErrVerificationTokenExpired
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID, token); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			// consumed or rotated since the lookup
			return nil, appErrors.ErrVerificationTokenInvalid
		}
		return nil, err
	}

	logger.Info("Email verified",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "email_verified"),
	)

	return &VerifyEmailResponse{
		Message:  "Email verified successfully",
		Verified: true,
	}, nil
}

// ResendVerificationEmail issues a fresh token, invalidating the previous one.
// A failed send is reported in the response rather than as an error.
func (s *Service) ResendVerificationEmail(ctx context.Context, req *ResendVerificationRequest) (*ResendVerificationResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if user.IsEmailVerified {
		return nil, appErrors.ErrEmailAlreadyVerified
	}

	token, expiry, err := s.newVerificationToken()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateVerificationToken(ctx, user.ID, token, expiry); err != nil {
		return nil, err
	}

	sent := true
	if err := s.sender.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		sent = false
		logger.Warn("Verification email could not be resent",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "verification_email_resend_failed"),
			zap.Error(err),
		)
	} else {
		logger.Info("Verification email resent",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "verification_email_resent"),
		)
	}

	return &ResendVerificationResponse{
		Message:               "Verification email sent",
		VerificationEmailSent: sent,
	}, nil
}

func (s *Service) CheckEmailVerification(ctx context.Context, userID uuid.UUID) (*VerificationStatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	return &VerificationStatusResponse{IsEmailVerified: user.IsEmailVerified}, nil
}

// ForgotPassword never reveals whether the address belongs to an account.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_requested_non_existent_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		return err
	}

	resetToken := &domainUser.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(domainUser.PasswordResetTokenTTL),
	}
	if err := s.userRepo.CreatePasswordResetToken(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.sender.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		logger.Warn("Password reset email could not be sent",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_email_failed"),
			zap.Error(err),
		)
		return nil
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", user.ID.String()),
		zap.String("token_id", resetToken.ID.String()),
		zap.Time("expires_at", resetToken.ExpiresAt),
		zap.String("event", "password_reset_token_generated"),
	)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewValidationError(err)
	}

	resetToken, err := s.userRepo.GetPasswordResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainUser.ErrTokenNotFound) {
			logger.Warn("Password reset attempt with invalid token",
				zap.String("event", "password_reset_failed_invalid_token"),
			)
			return appErrors.ErrResetTokenInvalid
		}
		return err
	}

	if resetToken.Used {
		return appErrors.ErrResetTokenUsed
	}
	if resetToken.IsExpired(s.now()) {
		return appErrors.ErrResetTokenExpired
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ConsumeResetToken(ctx, resetToken.ID, resetToken.UserID, hashedPassword); err != nil {
		switch {
		case errors.Is(err, domainUser.ErrTokenAlreadyUsed):
			return appErrors.ErrResetTokenUsed
		case errors.Is(err, domainUser.ErrTokenNotFound):
			return appErrors.ErrResetTokenInvalid
		}
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", resetToken.UserID.String()),
		zap.String("token_id", resetToken.ID.String()),
		zap.String("event", "password_reset_success"),
	)
	return nil
}

func (s *Service) newVerificationToken() (string, time.Time, error) {
	token, err := utils.GenerateSecureToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate verification token: %w", err)
	}
	return token, s.now().Add(domainUser.VerificationTokenTTL), nil
}

func (s *Service) issueAccessToken(user *domainUser.User) (string, error) {
	token, err := utils.GenerateAccessToken(
		user.ID,
		user.Email,
		string(user.Role),
		s.config.JWT.Secret,
		s.config.JWT.Expiry(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}
