package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "token-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateAccessToken(userID, "jane@example.com", "customer", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken(uuid.New(), "jane@example.com", "customer", "", time.Hour)
	assert.Error(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	valid, err := GenerateAccessToken(uuid.New(), "jane@example.com", "customer", testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateAccessToken(uuid.New(), "jane@example.com", "customer", testSecret, -time.Minute)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, testSecret},
		{"wrong algorithm", wrongAlg, testSecret},
		{"non uuid subject", badSubject, testSecret},
		{"garbage", "not.a.token", testSecret},
		{"empty", "", testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken()
	require.NoError(t, err)
	second, err := GenerateSecureToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.Regexp(t, `^[0-9a-f]{64}$`, first)
	assert.NotEqual(t, first, second)
}
