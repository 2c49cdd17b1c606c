package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/config"
	_ "salon/docs"
	"salon/internal/audit"
	"salon/internal/cache"
	"salon/internal/notification"
	"salon/internal/repository"
	"salon/internal/service"
	"salon/internal/storage"
	"salon/internal/transport/rest"
	"salon/pkg/auth"
	"salon/pkg/database"
	"salon/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Salon Scheduling API
// @version 1.0
// @description API записи клиентов, расписаний сотрудников и комиссий салона

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(cfg.Postgres.DSN(), cfg.Postgres.MigrationsDir, database.MigrateUp, log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	checks := map[string]rest.HealthCheck{
		"postgres": db.Ping,
	}

	var availabilityCache service.AvailabilityCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		defer rdb.Close()

		availabilityCache = cache.NewAvailabilityCache(rdb, cfg.Scheduling.AvailabilityCacheTTL)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		log.Info("Кэш доступности включен", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("Redis не настроен, доступность будет вычисляться без кэша")
	}

	var notifier service.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notification.NewEmailNotifier(cfg.SMTP, cfg.Scheduling.Location, log)
		log.Info("Email уведомления включены", zap.String("host", cfg.SMTP.Host))
	} else {
		notifier = notification.NewLogNotifier(log)
		log.Warn("SMTP не настроен, уведомления будут только записываться в лог")
	}

	var reports storage.ReportStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		reports = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, выгрузка выписок комиссий будет недоступна")
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:    repos,
		Logger:   log,
		Config:   cfg,
		Notifier: notifier,
		Audit:    audit.NewLogger(log),
		Cache:    availabilityCache,
		Reports:  reports,
	})

	tokens := auth.NewTokenManager(cfg.JWT.SigningKey, cfg.JWT.AccessTokenTTL)

	handler := rest.NewHandler(services, log, cfg, tokens, checks)

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
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("version", cfg.Version))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
