package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"agenda/config"
	_ "agenda/docs"
	"agenda/internal/repository"
	"agenda/internal/scheduling"
	"agenda/internal/service"
	"agenda/internal/storage"
	"agenda/internal/transport/rest"
	"agenda/migrations"
	"agenda/pkg/database"
	"agenda/pkg/logger"
	"agenda/pkg/tracing"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Agenda API
// @version 1.0
// @description Appointment booking: services, available slots and conflict-free bookings

// @BasePath /api/v1
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Name, cfg.Version, cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	policy, err := scheduling.NewPolicy(cfg.Schedule)
	if err != nil {
		logger.Fatal("invalid schedule configuration", zap.Error(err))
	}

	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		repos = repository.NewMemoryRepositories()
	default:
		db, err := database.NewPostgresDB(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		repos = repository.NewRepositories(db)
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			logger.Fatal("failed to initialize s3 storage", zap.Error(err))
		}
		fileStorage = s3Storage
		logger.Info("s3 storage initialized", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		logger.Warn("s3 storage is not configured, agenda export is disabled")
	}

	var limiter *rest.RedisRateLimiter
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()

		limiter = rest.NewRedisRateLimiter(rdb, cfg.Redis.BookingLimit, cfg.Redis.BookingWindow, cfg.Redis.RateLimitPrefix, cfg.Redis.FailOpen)
		logger.Info("booking rate limit enabled",
			zap.Int("limit", cfg.Redis.BookingLimit),
			zap.Duration("window", cfg.Redis.BookingWindow),
		)
	}

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      logger,
		Policy:      policy,
		FileStorage: fileStorage,
	})

	handler := rest.NewHandler(services, logger, repos.Health, limiter)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        otelhttp.NewHandler(router, cfg.Name),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", srv.Addr),
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", policy.Location().String()),
		zap.Duration("slot_step", policy.Step()),
	)

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop server gracefully", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", zap.Error(err))
	}

	logger.Info("server stopped")
}
