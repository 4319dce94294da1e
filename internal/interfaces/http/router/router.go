package router

import (
	"github.com/advoga/backend/internal/infrastructure/auth"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/advoga/backend/internal/infrastructure/logger"
	"github.com/advoga/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Options bundles the cross-cutting dependencies the router wires up
type Options struct {
	Config    *config.Config
	Logger    *zap.Logger
	Validator *auth.JWTValidator
}

// New builds the gin engine with the standard middleware chain and registers
// all routes under /api/v1. Health endpoints stay outside authentication.
func New(opts Options, registrars ...RouteRegistrar) *gin.Engine {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(opts.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(opts.Config.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.CORSWithOrigins(opts.Config.HTTP.CORSAllowOrigins),
		logger.GinMiddleware(opts.Logger),
		logger.Recovery(opts.Logger),
	)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(middleware.AuthConfig{
		Validator:           opts.Validator,
		SkipPaths:           []string{"/api/v1/health", "/api/v1/ready"},
		AllowHeaderFallback: opts.Config.App.Env != "production",
		Logger:              opts.Logger,
	}))

	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
