package middleware

import (
	"net/http"
	"strings"

	"github.com/advoga/backend/internal/infrastructure/auth"
	"github.com/advoga/backend/internal/infrastructure/logger"
	"github.com/advoga/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	ClaimsKey      = "jwt_claims"
	TenantIDKey    = "jwt_tenant_id"
	UserIDKey      = "jwt_user_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
	TenantIDHeader = "X-Tenant-ID"
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	Validator *auth.JWTValidator
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// AllowHeaderFallback accepts a bare X-Tenant-ID header when no bearer
	// token is present. Development only; validate() rejects it in production.
	AllowHeaderFallback bool
	Logger              *zap.Logger
}

// Auth creates the tenant-resolving authentication middleware. Every request
// past it carries a tenant ID in both the gin context and the request context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			if cfg.AllowHeaderFallback {
				if tenantID := c.GetHeader(TenantIDHeader); tenantID != "" {
					setIdentity(c, tenantID, "")
					c.Next()
					return
				}
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := cfg.Validator.Validate(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			code := dto.ErrCodeUnauthorized
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				code = dto.ErrCodeTokenExpired
				message = "Token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(ClaimsKey, claims)
		setIdentity(c, claims.TenantID, claims.UserID)
		c.Next()
	}
}

func setIdentity(c *gin.Context, tenantID, userID string) {
	c.Set(TenantIDKey, tenantID)
	c.Set(UserIDKey, userID)

	// Mirror into the request context so logger.L picks the IDs up.
	ctx := c.Request.Context()
	ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID)
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetTenantID retrieves the resolved tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get(TenantIDKey); exists {
		if id, ok := tenantID.(string); ok {
			return id
		}
	}
	return ""
}

// GetUserID retrieves the authenticated user ID from gin.Context
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(UserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}
