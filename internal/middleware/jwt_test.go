package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbook/internal/config"
	"tripbook/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:        "test-secret",
		SessionTTL:    24 * time.Hour,
		ResetTokenTTL: 10 * time.Minute,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	other := *cfg
	other.Secret = "different-secret"
	_, err = ValidateToken(token, &other)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SessionTTL = -time.Minute

	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotOK bool
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	cfg := testJWTConfig()
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}, cfg)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateResetToken(userID, "alice@example.com", "123456", cfg)
	require.NoError(t, err)

	claims, err := ValidateResetToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "123456", claims.Code)
}

func TestResetTokenRejectsSessionToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateResetToken(token, cfg)
	assert.Error(t, err)
}
