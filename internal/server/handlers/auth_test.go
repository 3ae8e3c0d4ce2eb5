package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/progresskeeper/internal/crypto"
	"github.com/iudanet/progresskeeper/pkg/api"
)

func signIn(t *testing.T, h *AuthHandler, req any) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.SignInAnonymous(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/anonymous", req))
	return w
}

func TestSignInAnonymous_CreatesUser(t *testing.T) {
	store := setupTestStorage(t)
	h := NewAuthHandler(testLogger(), store, testJWTConfig())

	w := signIn(t, h, api.SignInRequest{})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.SignInResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.DeviceSecret)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)

	// Сервер хранит только хеш секрета
	user, err := store.GetUserByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, crypto.HashDeviceSecret(resp.DeviceSecret), user.DeviceSecretHash)
	assert.NotEqual(t, resp.DeviceSecret, user.DeviceSecretHash)
}

func TestSignInAnonymous_EmptyBody(t *testing.T) {
	h := NewAuthHandler(testLogger(), setupTestStorage(t), testJWTConfig())

	w := httptest.NewRecorder()
	h.SignInAnonymous(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSignInAnonymous_ReSignIn(t *testing.T) {
	h := NewAuthHandler(testLogger(), setupTestStorage(t), testJWTConfig())

	var created api.SignInResponse
	decodeBody(t, signIn(t, h, api.SignInRequest{}), &created)

	w := signIn(t, h, api.SignInRequest{UserID: created.UserID, DeviceSecret: created.DeviceSecret})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SignInResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, created.UserID, resp.UserID)
	assert.Empty(t, resp.DeviceSecret)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignInAnonymous_Errors(t *testing.T) {
	h := NewAuthHandler(testLogger(), setupTestStorage(t), testJWTConfig())

	var created api.SignInResponse
	decodeBody(t, signIn(t, h, api.SignInRequest{}), &created)

	tests := []struct {
		body       any
		name       string
		statusCode int
	}{
		{
			name:       "wrong secret",
			body:       api.SignInRequest{UserID: created.UserID, DeviceSecret: "wrong"},
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			body:       api.SignInRequest{UserID: "00000000-0000-0000-0000-000000000000", DeviceSecret: created.DeviceSecret},
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "missing secret",
			body:       api.SignInRequest{UserID: created.UserID},
			statusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := signIn(t, h, tt.body)
			assert.Equal(t, tt.statusCode, w.Code)

			var resp api.ErrorResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, http.StatusText(tt.statusCode), resp.Error)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.SignInAnonymous(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", strings.NewReader("{not json")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "progresskeeper", claims.Issuer)

	_, err = ValidateAccessToken(JWTConfig{Secret: []byte("other")}, token)
	assert.Error(t, err)
}
