package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"progress_charts/internal/config"
	"progress_charts/internal/controller"
	"progress_charts/internal/middleware"
	"progress_charts/internal/model"
	"progress_charts/internal/repository"
	"progress_charts/internal/service"
	"progress_charts/internal/util"
	"progress_charts/pkg/chartrender"
	"progress_charts/pkg/configwatcher"
	"progress_charts/pkg/database"
	"progress_charts/pkg/logger"
	"progress_charts/pkg/monitoring"
	"progress_charts/pkg/security"
	"progress_charts/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
	limiter  *security.RateLimiter
	tracer   *sdktrace.TracerProvider

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type services struct {
	storage  service.StorageProvider
	surface  *service.SurfaceService
	renderer *service.ImageRenderer
	chart    *service.ChartService
}

type controllers struct {
	chart   *controller.ChartController
	surface *controller.SurfaceController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置热更新入口
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

// initSurfaceStore 按配置选择渲染目标存储
func (a *App) initSurfaceStore(ctx context.Context, cfg *config.Config) (repository.SurfaceStore, error) {
	switch cfg.Surface.Backend {
	case util.SurfaceBackendRedis:
		rdb, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.Redis = rdb
		return repository.NewRedisSurfaceRepository(rdb, cfg.Surface.RedisPrefix), nil
	case util.SurfaceBackendMySQL:
		db, err := database.InitDB(ctx, &cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return nil, err
		}
		a.DB = db
		return repository.NewSurfaceRepository(db), nil
	default:
		return repository.NewMemorySurfaceRepository(), nil
	}
}

func (a *App) initServices(cfg *config.Config, store repository.SurfaceStore, storage service.StorageProvider) *services {
	s := &services{storage: storage}

	s.surface = service.NewSurfaceService(store, storage)
	s.renderer = service.NewImageRenderer(store, storage, renderSettings(cfg))
	s.chart = service.NewChartService(s.renderer, store)

	return s
}

func (a *App) initControllers(s *services, store repository.SurfaceStore) *controllers {
	return &controllers{
		chart:   controller.NewChartController(s.chart),
		surface: controller.NewSurfaceController(s.surface),
		health:  controller.NewHealthController(store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, window)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerConfigCallbacks 热更新时调整日志级别和渲染默认值
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.renderer.SetDefaults(renderSettings(cfg))
		logger.Log.Info("Render defaults updated",
			zap.Int("width", cfg.Render.Width),
			zap.Int("height", cfg.Render.Height),
			zap.String("format", cfg.Render.Format))
	})
}

// renderSettings 字体加载失败时退回默认字体
func renderSettings(cfg *config.Config) chartrender.Settings {
	font, err := chartrender.LoadFont(cfg.Render.FontPath)
	if err != nil {
		logger.Log.Warn("Failed to load chart font, using default", zap.Error(err))
	}
	return chartrender.Settings{
		Format: model.ImageFormat(cfg.Render.Format),
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Font:   font,
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := app.initSurfaceStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize surface store",
			zap.String("backend", cfg.Surface.Backend),
			zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.build(cfg, store, service.NewStorageService(cfg))
	return app
}

// build 组装服务、控制器和路由
func (a *App) build(cfg *config.Config, store repository.SurfaceStore, storage service.StorageProvider) {
	a.services = a.initServices(cfg, store, storage)
	controllers := a.initControllers(a.services, store)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	a.Router = router

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	a.registerConfigCallbacks()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.Server.WatchConfig && a.Config.FilePath != "" {
		go func() {
			if err := configwatcher.Watch(watchCtx, a.Config.FilePath, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放后台协程和外部连接
func (a *App) Close(ctx context.Context) {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
