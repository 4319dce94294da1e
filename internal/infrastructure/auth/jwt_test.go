package auth

import (
	"testing"
	"time"

	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough-000"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "advoga",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		TenantID: "b7a3e6f0-0000-0000-0000-000000000001",
		UserID:   "b7a3e6f0-0000-0000-0000-000000000002",
	}
}

func TestJWTValidatorValidate(t *testing.T) {
	validator := NewJWTValidator(config.JWTConfig{Secret: testSecret, Issuer: "advoga"})

	t.Run("accepts a well formed token", func(t *testing.T) {
		claims, err := validator.Validate(signToken(t, testSecret, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "b7a3e6f0-0000-0000-0000-000000000001", claims.TenantID)
		assert.Equal(t, "b7a3e6f0-0000-0000-0000-000000000002", claims.UserID)
	})

	t.Run("rejects a wrong signature", func(t *testing.T) {
		_, err := validator.Validate(signToken(t, "some-other-secret-that-is-also-long", validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := validator.Validate(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		_, err := validator.Validate(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token without tenant", func(t *testing.T) {
		claims := validClaims()
		claims.TenantID = ""
		_, err := validator.Validate(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := validator.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
