package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ohmycook/internal/api"
	"ohmycook/internal/core/ai/cache"
	"ohmycook/internal/core/ai/gemini"
	"ohmycook/internal/core/ai/generation"
	"ohmycook/internal/core/ai/imagesearch"
	"ohmycook/internal/core/ai/openrouter"
	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/core/catalog"
	"ohmycook/internal/core/community"
	"ohmycook/internal/core/image"
	"ohmycook/internal/core/pantry"
	"ohmycook/internal/core/recipe"
	"ohmycook/internal/core/session"
	"ohmycook/internal/infrastructure/config"
	"ohmycook/internal/infrastructure/store"
	"ohmycook/internal/pkg/common"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 使用者資料儲存
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout+time.Second)
	st, notifier, err := store.Open(connectCtx, cfg.Store)
	cancel()
	if err != nil {
		common.LogFatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	// 初始化快取（圖片搜尋結果）
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	p, err := newProvider(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize AI provider", zap.String("provider", cfg.AI.Provider), zap.Error(err))
	}
	defer p.Close()

	common.LogInfo("載入設定",
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", p.GetModel()),
		zap.String("store", cfg.Store.Driver),
	)

	gen := generation.NewClient(p, cfg.AI)
	cat := catalog.Default()

	popular, err := community.NewService(ctx, st, notifier)
	if err != nil {
		common.LogFatal("Failed to start community service", zap.Error(err))
	}
	defer popular.Close()

	arena := session.NewArena(st, gen, gen, func(r *common.Recipe) {
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := popular.RecordSearch(rctx, r.EnglishName); err != nil {
			common.LogWarn("Failed to record recipe search",
				zap.String("recipe", r.EnglishName),
				zap.Error(err),
			)
		}
	})

	finder := imagesearch.NewClient(cfg.ImageSearch, cacheManager)
	engine := recipe.NewEngine(gen, recipe.NewImageResolver(finder, cfg.ImageSearch.MaxConcurrency))

	router, stopRouter := api.SetupRouter(cfg, &api.Services{
		Arena:      arena,
		Engine:     engine,
		Catalog:    cat,
		Receipts:   pantry.NewReceiptIngestion(gen, cat),
		Images:     image.NewService(cfg.Image.MaxSizeBytes),
		Community:  popular,
		Store:      st,
		Model:      p.GetModel(),
		CacheStats: cacheManager.GetStats,
	})
	defer stopRouter()

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

// newProvider 依 ai.provider 建立生成服務提供者
func newProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.AI.Provider {
	case "openrouter":
		return openrouter.NewClient(cfg), nil
	case "gemini", "":
		c, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}
