package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/indiverse/heritagebot/internal/api"
	"github.com/indiverse/heritagebot/internal/api/middleware"
	"github.com/indiverse/heritagebot/internal/auth"
	"github.com/indiverse/heritagebot/internal/config"
	"github.com/indiverse/heritagebot/internal/conversation"
	"github.com/indiverse/heritagebot/internal/knowledge"
	"github.com/indiverse/heritagebot/internal/repository"
	"github.com/indiverse/heritagebot/internal/scheduler"
	"github.com/indiverse/heritagebot/internal/service"
	"github.com/indiverse/heritagebot/internal/weather"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chatbot HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// The bot cannot answer without its knowledge document
	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	logger.Info("Knowledge base loaded",
		zap.String("path", cfg.Knowledge.Path),
		zap.Int("regions", len(kb.Regions())),
		zap.Int("intents", len(kb.Intents)),
	)

	// Initialize catalog database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	catalogRepo := repository.NewCatalogRepository(db)
	seedService := service.NewSeedService(catalogRepo, logger)
	if _, err := seedService.SeedDirectory(context.Background(), cfg.Knowledge.CatalogDir); err != nil {
		logger.Warn("Failed to seed catalog, breadcrumbs fall back to raw segments", zap.Error(err))
	}

	weatherCache, memoryCache, closeCache := newWeatherCache(cfg.Weather, logger)
	defer closeCache()
	weatherClient := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, weatherCache, logger)

	// Initialize services
	chatService := service.NewChatService(cfg, kb, conversation.NewStore(), logger)
	widgetService := service.NewWidgetService(cfg, weatherClient)
	navigationService := service.NewNavigationService(catalogRepo)
	adminService := service.NewAdminService(cfg, catalogRepo, chatService, seedService, logger)

	routerCfg := api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: cfg.Server.AllowOrigins,
		Logger:       logger,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerHour, cfg.RateLimit.Burst)
	}
	if cfg.Auth.JWTSecret != "" {
		routerCfg.Verifier = auth.NewVerifier(cfg.Auth.JWTSecret)
	}

	// Housekeeping
	sched := scheduler.New(logger)
	for _, job := range housekeeping(cfg, chatService, memoryCache, routerCfg.RateLimiter) {
		if err := sched.Add(job); err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	// Setup router
	router := api.SetupRouter(adminService, chatService, widgetService, navigationService, routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting heritagebot server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
	return nil
}

// newWeatherCache uses Redis when it is configured and reachable, otherwise
// an in-process cache. The memory cache is returned separately so the
// sweep job can purge it.
func newWeatherCache(cfg config.WeatherConfig, logger *zap.Logger) (weather.Cache, *weather.MemoryCache, func()) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			logger.Info("Using Redis weather cache", zap.String("addr", cfg.RedisAddr))
			return weather.NewRedisCache(rdb, cfg.CacheTTL), nil, func() { rdb.Close() }
		}
		rdb.Close()
		logger.Warn("Redis unavailable, using in-memory weather cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	mc := weather.NewMemoryCache(cfg.CacheTTL)
	return mc, mc, func() {}
}

func housekeeping(
	cfg *config.Config,
	chatService *service.ChatService,
	memoryCache *weather.MemoryCache,
	limiter *middleware.RateLimiter,
) []scheduler.Job {
	jobs := []scheduler.Job{{
		Name: "sweep",
		Spec: cfg.Chat.SweepSchedule,
		Run: func(ctx context.Context) error {
			chatService.SweepIdle(cfg.Chat.SessionIdle)
			if memoryCache != nil {
				memoryCache.Purge()
			}
			return nil
		},
	}}

	if limiter != nil {
		jobs = append(jobs, scheduler.Job{
			Name: "rate-limit-reset",
			Spec: "@hourly",
			Run: func(ctx context.Context) error {
				limiter.Reset()
				return nil
			},
		})
	}

	return jobs
}
