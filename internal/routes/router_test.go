package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"food-delivery-backend/internal/config"
	"food-delivery-backend/internal/infrastructure/database/postgres/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	mu                 sync.Mutex
	verificationTokens map[string]string
	resetTokens        map[string]string
	verificationErr    error
}

func newCapturingSender() *capturingSender {
	return &capturingSender{
		verificationTokens: make(map[string]string),
		resetTokens:        make(map[string]string),
	}
}

func (s *capturingSender) SendVerificationEmail(_ context.Context, to, _, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verificationTokens[to] = token
	return s.verificationErr
}

func (s *capturingSender) failVerification(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verificationErr = err
}

func (s *capturingSender) SendPasswordResetEmail(_ context.Context, to, _, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTokens[to] = token
	return nil
}

func (s *capturingSender) verificationToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verificationTokens[email]
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	sender *capturingSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: "router-test-secret", ExpiryHours: 1},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sender := newCapturingSender()
	return &testServer{
		t:      t,
		router: SetupRoutes(ctx, cfg, dbtest.New(t), sender),
		sender: sender,
	}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func (s *testServer) doList(method, path, token string) []map[string]interface{} {
	s.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var list []map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	w, body := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Jane Doe",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return body["access_token"].(string)
}

func (s *testServer) registerVerified(email string) string {
	s.t.Helper()
	token := s.register(email)
	w, _ := s.do(http.MethodGet, "/auth/verify-email?token="+s.sender.verificationToken(email), "", nil)
	require.Equal(s.t, http.StatusOK, w.Code)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `eatnzo_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestRegisterVerifyFlow(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
		"name":     "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, true, body["verificationEmailSent"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, false, user["isEmailVerified"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHashed")
	session := body["access_token"].(string)

	w, body = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "jane@example.com",
		"password": "other-secret",
		"name":     "Impostor",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, float64(http.StatusConflict), body["statusCode"])
	assert.Equal(t, "Conflict", body["error"])

	w, body = s.do(http.MethodGet, "/auth/verification-status", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isEmailVerified"])

	token := s.sender.verificationToken("jane@example.com")
	require.Len(t, token, 64)

	w, body = s.do(http.MethodGet, "/auth/verify-email?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["verified"])
	assert.Equal(t, "Email verified successfully", body["message"])

	w, body = s.do(http.MethodGet, "/auth/verify-email?token="+token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid verification token", body["message"])

	w, body = s.do(http.MethodGet, "/auth/verification-status", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["isEmailVerified"])

	w, body = s.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already verified", body["message"])

	w, _ = s.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = s.do(http.MethodGet, "/users/me", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe", body["name"])
	assert.Equal(t, true, body["isEmailVerified"])
}

func TestRegisterMinimalCredentials(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "a@b.com",
		"password": "pw",
		"name":     "A",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "A", body["user"].(map[string]interface{})["name"])

	token := s.sender.verificationToken("a@b.com")
	w, body = s.do(http.MethodGet, "/auth/verify-email?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["verified"])

	w, _ = s.do(http.MethodGet, "/auth/verify-email?token="+token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResendVerificationWhenMailFails(t *testing.T) {
	s := newTestServer(t)
	s.register("jane@example.com")
	first := s.sender.verificationToken("jane@example.com")

	s.sender.failVerification(errors.New("smtp down"))
	w, body := s.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, body["verificationEmailSent"])
	assert.Equal(t, "Verification email sent", body["message"])

	second := s.sender.verificationToken("jane@example.com")
	require.NotEqual(t, first, second)

	s.sender.failVerification(nil)
	w, body = s.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["verificationEmailSent"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("jane@example.com")

	w, body := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "jane@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["access_token"])
	assert.NotContains(t, body, "verificationEmailSent")

	w, wrongPassword := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "jane@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, unknownUser := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "who@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", wrongPassword["message"])
	assert.Equal(t, wrongPassword["message"], unknownUser["message"])
}

func TestValidationAndAuthErrors(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "bad", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["message"], "email must be a valid email address")

	w, _ = s.do(http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/restaurants/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantsAndOrders(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerVerified("owner@example.com")

	create := func(name string) string {
		w, body := s.do(http.MethodPost, "/restaurants", owner, map[string]interface{}{
			"name":        name,
			"cuisineType": "italian",
			"address":     "1 Via Roma",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return body["id"].(string)
	}
	first := create("First Place")
	closed := create("Closed Place")
	last := create("Last Place")

	w, _ := s.do(http.MethodPatch, "/restaurants/"+closed, owner, map[string]interface{}{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)

	list := s.doList(http.MethodGet, "/restaurants", "")
	require.Len(t, list, 2)
	ids := []string{list[0]["id"].(string), list[1]["id"].(string)}
	assert.ElementsMatch(t, []string{first, last}, ids)
	assert.NotContains(t, ids, closed)

	w, _ = s.do(http.MethodPost, "/restaurants", "", map[string]interface{}{"name": "Anon", "cuisineType": "thai"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	intruder := s.register("intruder@example.com")
	w, _ = s.do(http.MethodPatch, "/restaurants/"+first, intruder, map[string]interface{}{"name": "Mine Now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, item := s.do(http.MethodPost, "/restaurants/"+first+"/menu", owner, map[string]interface{}{
		"name":     "Lasagna",
		"price":    14.5,
		"category": "main_course",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := item["id"].(string)

	menu := s.doList(http.MethodGet, "/restaurants/"+first+"/menu", "")
	require.Len(t, menu, 1)

	orderBody := map[string]interface{}{
		"restaurantId":    first,
		"deliveryAddress": "742 Evergreen Terrace",
		"items":           []map[string]interface{}{{"menuItemId": itemID, "quantity": 2}},
	}

	// unverified sessions cannot order
	w, body := s.do(http.MethodPost, "/orders", intruder, orderBody)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Please verify your email address before placing orders", body["message"])

	w, placed := s.do(http.MethodPost, "/orders", owner, orderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 29.0, placed["totalAmount"])
	assert.Equal(t, "pending", placed["status"])

	orders := s.doList(http.MethodGet, "/orders", owner)
	require.Len(t, orders, 1)

	w, got := s.do(http.MethodGet, "/orders/"+placed["id"].(string), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, got["items"], 1)

	w, updated := s.do(http.MethodPatch, "/orders/"+placed["id"].(string)+"/status", owner, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", updated["status"])
	assert.Equal(t, []interface{}{"preparing", "cancelled"}, updated["allowedTransitions"])

	w, _ = s.do(http.MethodPatch, "/orders/"+placed["id"].(string)+"/status", owner, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	incoming := s.doList(http.MethodGet, "/restaurants/"+first+"/orders", owner)
	require.Len(t, incoming, 1)
	assert.Equal(t, "confirmed", incoming[0]["status"])

	w, _ = s.do(http.MethodDelete, "/restaurants/"+first, owner, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodDelete, "/restaurants/"+last, owner, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = s.do(http.MethodGet, "/restaurants/"+last, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestForgotAndResetPassword(t *testing.T) {
	s := newTestServer(t)
	s.register("jane@example.com")

	w, body := s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	generic := body["message"]

	w, body = s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, generic, body["message"])

	s.sender.mu.Lock()
	resetToken := s.sender.resetTokens["jane@example.com"]
	s.sender.mu.Unlock()
	require.NotEmpty(t, resetToken)

	w, _ = s.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": resetToken, "password": "fresh-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": resetToken, "password": "again-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "jane@example.com", "password": "fresh-pass"})
	assert.Equal(t, http.StatusOK, w.Code)
}
