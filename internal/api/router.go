package api

import (
	"github.com/gin-gonic/gin"
	"github.com/indiverse/heritagebot/internal/api/admin"
	"github.com/indiverse/heritagebot/internal/api/middleware"
	"github.com/indiverse/heritagebot/internal/api/widget"
	"github.com/indiverse/heritagebot/internal/auth"
	"github.com/indiverse/heritagebot/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
	// RateLimiter is applied to chat routes when set
	RateLimiter *middleware.RateLimiter
	// Verifier checks optional user tokens on chat routes when set
	Verifier *auth.Verifier
	Logger   *zap.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(
	adminService *service.AdminService,
	chatService *service.ChatService,
	widgetService *service.WidgetService,
	navigationService *service.NavigationService,
	cfg RouterConfig,
) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	var chat []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		chat = append(chat, middleware.RateLimit(cfg.RateLimiter, logger))
	}
	if cfg.Verifier != nil {
		chat = append(chat, middleware.OptionalUser(cfg.Verifier))
	}

	// Public API
	widgetHandler := widget.NewHandler(widgetService, chatService, navigationService)
	widgetHandler.RegisterRoutes(r.Group("/api"), chat...)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
