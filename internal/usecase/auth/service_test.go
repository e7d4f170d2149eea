package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-delivery-backend/internal/config"
	domainUser "food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/usecase/auth/mocks"
	appErrors "food-delivery-backend/pkg/errors"
	"food-delivery-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	service *Service
	repo    *fakeUserRepository
	sender  *mocks.MockEmailSender
	clock   time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		repo:   newFakeUserRepository(),
		sender: mocks.NewMockEmailSender(ctrl),
		clock:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 24}}
	env.service = NewService(env.repo, env.sender, cfg)
	env.service.now = func() time.Time { return env.clock }
	return env
}

func (e *testEnv) register(t *testing.T, email string) *AuthResponse {
	t.Helper()
	e.sender.EXPECT().SendVerificationEmail(gomock.Any(), email, "Jane Doe", gomock.Any()).Return(nil)
	resp, err := e.service.Register(context.Background(), &RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Jane Doe",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	resp := env.register(t, "jane@example.com")

	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, domainUser.RoleCustomer, resp.User.Role)
	assert.False(t, resp.User.IsEmailVerified)
	require.NotNil(t, resp.VerificationEmailSent)
	assert.True(t, *resp.VerificationEmailSent)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.Subject)
	assert.Equal(t, "customer", claims.Role)

	stored, err := env.repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.EmailVerificationToken)
	assert.Len(t, *stored.EmailVerificationToken, 64)
	require.NotNil(t, stored.VerificationTokenExpiry)
	assert.Equal(t, env.clock.Add(24*time.Hour), *stored.VerificationTokenExpiry)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "secret123"))
}

func TestRegister_NormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	env.sender.EXPECT().SendVerificationEmail(gomock.Any(), "jane@example.com", gomock.Any(), gomock.Any()).Return(nil)

	resp, err := env.service.Register(context.Background(), &RegisterRequest{
		Email:    "  Jane@Example.COM ",
		Password: "secret123",
		Name:     "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dup@example.com")

	_, err := env.service.Register(context.Background(), &RegisterRequest{
		Email:    "dup@example.com",
		Password: "another1",
		Name:     "Someone",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestRegister_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Register(context.Background(), &RegisterRequest{
		Email:    "not-an-email",
		Password: "123",
	})
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)
}

func TestRegister_EmailFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(t)
	env.sender.EXPECT().
		SendVerificationEmail(gomock.Any(), "jane@example.com", gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down"))

	resp, err := env.service.Register(context.Background(), &RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		Name:     "Jane",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.VerificationEmailSent)
	assert.False(t, *resp.VerificationEmailSent)

	_, err = env.repo.GetByEmail(context.Background(), "jane@example.com")
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	resp, err := env.service.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Nil(t, resp.VerificationEmailSent)

	_, wrongPassword := env.service.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	_, unknownEmail := env.service.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, appErrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	token := env.repo.tokenOf("jane@example.com")
	require.NotEmpty(t, token)

	resp, err := env.service.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.Equal(t, "Email verified successfully", resp.Message)

	stored, err := env.repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)
	assert.Nil(t, stored.EmailVerificationToken)
	assert.Nil(t, stored.VerificationTokenExpiry)

	_, err = env.service.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenInvalid)
}

func TestVerifyEmail_TokenRotatedDuringVerify(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	token := env.repo.tokenOf("jane@example.com")
	stored, err := env.repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)

	env.repo.beforeVerify = func() {
		require.NoError(t, env.repo.UpdateVerificationToken(context.Background(), stored.ID, "rotated", env.clock.Add(time.Hour)))
	}

	_, err = env.service.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenInvalid)
	assert.Equal(t, "rotated", env.repo.tokenOf("jane@example.com"))
}

func TestRegister_MinimalInput(t *testing.T) {
	env := newTestEnv(t)
	env.sender.EXPECT().SendVerificationEmail(gomock.Any(), "a@b.com", "A", gomock.Any()).Return(nil)

	resp, err := env.service.Register(context.Background(), &RegisterRequest{Email: "a@b.com", Password: "pw", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "A", resp.User.Name)

	_, err = env.service.Login(context.Background(), &LoginRequest{Email: "a@b.com", Password: "pw"})
	assert.NoError(t, err)
}

func TestVerifyEmail_UnknownOrEmptyToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.VerifyEmail(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenInvalid)

	_, err = env.service.VerifyEmail(context.Background(), "")
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenInvalid)
}

func TestVerifyEmail_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	token := env.repo.tokenOf("jane@example.com")

	env.clock = env.clock.Add(24*time.Hour + time.Second)

	_, err := env.service.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenExpired)

	stored, err := env.repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsEmailVerified)
}

func TestVerifyEmail_AtExactExpiry(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	token := env.repo.tokenOf("jane@example.com")

	env.clock = env.clock.Add(24 * time.Hour)

	_, err := env.service.VerifyEmail(context.Background(), token)
	assert.NoError(t, err)
}

func TestResendVerificationEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	oldToken := env.repo.tokenOf("jane@example.com")

	var sentToken string
	env.sender.EXPECT().
		SendVerificationEmail(gomock.Any(), "jane@example.com", "Jane Doe", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, token string) error {
			sentToken = token
			return nil
		})

	resp, err := env.service.ResendVerificationEmail(context.Background(), &ResendVerificationRequest{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, resp.VerificationEmailSent)
	assert.Equal(t, "Verification email sent", resp.Message)

	newToken := env.repo.tokenOf("jane@example.com")
	assert.NotEqual(t, oldToken, newToken)
	assert.Equal(t, newToken, sentToken)

	_, err = env.service.VerifyEmail(context.Background(), oldToken)
	assert.ErrorIs(t, err, appErrors.ErrVerificationTokenInvalid)

	_, err = env.service.VerifyEmail(context.Background(), newToken)
	assert.NoError(t, err)
}

func TestResendVerificationEmail_SendFailureIsReported(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	oldToken := env.repo.tokenOf("jane@example.com")

	env.sender.EXPECT().
		SendVerificationEmail(gomock.Any(), "jane@example.com", gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down"))

	resp, err := env.service.ResendVerificationEmail(context.Background(), &ResendVerificationRequest{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.VerificationEmailSent)

	// the rotated token is stored and still verifies
	newToken := env.repo.tokenOf("jane@example.com")
	assert.NotEqual(t, oldToken, newToken)
	_, err = env.service.VerifyEmail(context.Background(), newToken)
	assert.NoError(t, err)
}

func TestResendVerificationEmail_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ResendVerificationEmail(context.Background(), &ResendVerificationRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	env.register(t, "jane@example.com")
	_, err = env.service.VerifyEmail(context.Background(), env.repo.tokenOf("jane@example.com"))
	require.NoError(t, err)

	_, err = env.service.ResendVerificationEmail(context.Background(), &ResendVerificationRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrEmailAlreadyVerified)
}

func TestCheckEmailVerification(t *testing.T) {
	env := newTestEnv(t)
	resp := env.register(t, "jane@example.com")

	status, err := env.service.CheckEmailVerification(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.False(t, status.IsEmailVerified)

	_, err = env.service.VerifyEmail(context.Background(), env.repo.tokenOf("jane@example.com"))
	require.NoError(t, err)

	status, err = env.service.CheckEmailVerification(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.True(t, status.IsEmailVerified)
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	var resetToken string
	env.sender.EXPECT().
		SendPasswordResetEmail(gomock.Any(), "jane@example.com", "Jane Doe", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, token string) error {
			resetToken = token
			return nil
		})

	require.NoError(t, env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "jane@example.com"}))
	require.NotEmpty(t, resetToken)

	// unknown addresses get the same answer and no email
	require.NoError(t, env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "ghost@example.com"}))

	require.NoError(t, env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "brand-new-pw"}))

	_, err := env.service.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "brand-new-pw"})
	assert.NoError(t, err)

	err = env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "again-new-pw"})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenUsed)

	err = env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: "bogus", Password: "again-new-pw"})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenInvalid)
}

func (e *testEnv) requestReset(t *testing.T, email string) string {
	t.Helper()
	var resetToken string
	e.sender.EXPECT().
		SendPasswordResetEmail(gomock.Any(), email, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, token string) error {
			resetToken = token
			return nil
		})
	require.NoError(t, e.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: email}))
	require.NotEmpty(t, resetToken)
	return resetToken
}

func TestResetPassword_TokenSpentConcurrently(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	resetToken := env.requestReset(t, "jane@example.com")

	env.repo.beforeConsume = func() { env.repo.spend(resetToken) }

	err := env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "loser-pw"})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenUsed)

	_, err = env.service.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestResetPassword_FailedWriteKeepsToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")
	resetToken := env.requestReset(t, "jane@example.com")

	env.repo.failPasswordWrite = errors.New("connection reset")
	err := env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "brand-new-pw"})
	require.Error(t, err)

	stored, err := env.repo.GetPasswordResetToken(context.Background(), resetToken)
	require.NoError(t, err)
	assert.False(t, stored.Used)

	env.repo.failPasswordWrite = nil
	require.NoError(t, env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "brand-new-pw"}))
}

func TestResetPassword_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	var resetToken string
	env.sender.EXPECT().
		SendPasswordResetEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, token string) error {
			resetToken = token
			return nil
		})
	require.NoError(t, env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "jane@example.com"}))

	env.clock = env.clock.Add(25 * time.Hour)

	err := env.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: resetToken, Password: "brand-new-pw"})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenExpired)
}

func TestCleanupStaleTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.repo.CreatePasswordResetToken(ctx, &domainUser.PasswordResetToken{Token: "fresh", ExpiresAt: env.clock.Add(time.Hour)}))
	require.NoError(t, env.repo.CreatePasswordResetToken(ctx, &domainUser.PasswordResetToken{Token: "stale", ExpiresAt: env.clock.Add(-time.Hour)}))

	env.service.cleanupStaleTokens(ctx)

	_, err := env.repo.GetPasswordResetToken(ctx, "fresh")
	assert.NoError(t, err)
	_, err = env.repo.GetPasswordResetToken(ctx, "stale")
	assert.ErrorIs(t, err, domainUser.ErrTokenNotFound)
}

func TestStartTokenCleanupJob_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		env.service.StartTokenCleanupJob(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup job did not stop")
	}
}
