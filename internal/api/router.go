package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ohmycook/internal/api/handlers"
	"ohmycook/internal/api/handlers/health"
	recipeHandler "ohmycook/internal/api/handlers/recipe"
	"ohmycook/internal/api/middleware"
	"ohmycook/internal/core/catalog"
	"ohmycook/internal/core/community"
	"ohmycook/internal/core/image"
	"ohmycook/internal/core/pantry"
	recipeService "ohmycook/internal/core/recipe"
	"ohmycook/internal/core/session"
	"ohmycook/internal/infrastructure/config"
	"ohmycook/internal/pkg/common"
)

const (
	// 預設超時
	defaultTimeout = 120 * time.Second
	// 預設請求體大小限制 (10MB)
	defaultMaxBodySize = 10 << 20
)

// Services 路由需要的核心服務
type Services struct {
	Arena     *session.Arena
	Engine    *recipeService.Engine
	Catalog   *catalog.Catalog
	Receipts  *pantry.ReceiptIngestion
	Images    *image.Service
	Community *community.Service
	Store     health.Pinger
	Model     string
	// CacheStats 可為 nil
	CacheStats func() map[string]interface{}
}

// SetupRouter 設置路由；回傳的 stop 用於停止背景清理協程
func SetupRouter(cfg *config.Config, svc *Services) (*gin.Engine, func()) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBodySize := cfg.Server.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Request-ID", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	var stops []func()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		stops = append(stops, limiter.Stop)
		router.Use(middleware.RateLimit(limiter))
	}

	router.Use(middleware.Timeout(timeout))

	healthHandler := health.NewHandler(cfg.App.Version, svc.Model, svc.Store, svc.Arena, svc.CacheStats)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	stops = append(stops, dedup.Stop)

	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, svc.Arena)
	chatHandler := handlers.NewChatHandler(svc.Arena, svc.Community)
	communityHandler := handlers.NewCommunityHandler(svc.Community)
	sessionHandler := handlers.NewSessionHandler(svc.Arena)
	recipes := recipeHandler.NewHandler(svc.Arena, svc.Engine, svc.Catalog, svc.Receipts, svc.Images, svc.Community)

	api := router.Group("/api/v1")
	api.Use(middleware.Partition())
	{
		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/search", catalogHandler.Search)
			catalogGroup.GET("/categories", catalogHandler.Categories)
			catalogGroup.GET("/common", catalogHandler.Common)
		}

		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", recipes.ListIngredients)
			ingredientGroup.POST("", recipes.AddIngredients)
			ingredientGroup.POST("/receipt", dedup.Handler(), recipes.UploadReceipt)
			ingredientGroup.DELETE("/:key", recipes.RemoveIngredient)
			ingredientGroup.PATCH("/:key", recipes.UpdateQuantity)
			ingredientGroup.PUT("/:key/priority", recipes.TogglePriority)
		}

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.List)
			recipeGroup.POST("/recommend", dedup.Handler(), recipes.Recommend)
			recipeGroup.GET("/:name", recipes.Get)
			recipeGroup.POST("/:name/hydrate", recipes.Hydrate)
		}

		api.GET("/saved", recipes.ListSaved)
		api.POST("/saved/:name", recipes.ToggleSaved)

		api.GET("/shopping", recipes.ListShopping)
		api.POST("/shopping/:name", recipes.ToggleShopping)
		api.POST("/shopping/from-recipe/:name", recipes.AddMissing)

		api.GET("/chat/:key", chatHandler.GetContext)
		api.POST("/chat/:key/messages", chatHandler.SendMessage)

		api.GET("/community/popular", communityHandler.Popular)

		api.DELETE("/session", sessionHandler.Clear)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("model", svc.Model),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, func() {
		for _, stop := range stops {
			stop()
		}
	}
}
