package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advoga/backend/internal/infrastructure/auth"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthServer(t *testing.T, allowFallback bool) (*gin.Engine, *auth.JWTValidator) {
	t.Helper()
	validator := auth.NewJWTValidator(config.JWTConfig{
		Secret: "test-secret-key-that-is-long-enough-000",
		Issuer: "advoga",
	})

	engine := gin.New()
	engine.Use(Auth(AuthConfig{
		Validator:           validator,
		SkipPaths:           []string{"/health"},
		AllowHeaderFallback: allowFallback,
	}))
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c), "user_id": GetUserID(c)})
	})
	return engine, validator
}

func signTestToken(t *testing.T, tenantID string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "advoga",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TenantID: tenantID,
		UserID:   "user-1",
	})
	signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough-000"))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	engine, _ := newAuthServer(t, false)

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token resolves the tenant", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "tenant-a", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "tenant-a")
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("expired token is rejected with its own code", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "tenant-a", time.Now().Add(-time.Hour)))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("tenant header alone is not enough", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-Tenant-ID", "tenant-a")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddlewareHeaderFallback(t *testing.T) {
	engine, _ := newAuthServer(t, true)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Tenant-ID", "tenant-dev")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-dev")
}
