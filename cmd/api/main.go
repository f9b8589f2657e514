package main

// @title Consultation Service API
// @version 1.0.0
// @description Сервис приёма заявок на консультацию по легализации зданий. Предоставляет API для поиска адресов (juso.go.kr), получения данных реестра зданий (data.go.kr), подачи заявок с вложениями и административной панели.
// @description
// @description Основные возможности:
// @description - Поиск корейских адресов по ключевому слову
// @description - Автоматическое получение выписки из реестра зданий
// @description - Подача и ведение заявок на консультацию
// @description - Загрузка вложений в S3-совместимое хранилище
// @description - Админ-панель с сессионной аутентификацией и TOTP 2FA

// @contact.name API Support
// @contact.email support@consultation-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/consultation-service/docs/swagger"
	"github.com/consultation-service/internal/config"
	httpDelivery "github.com/consultation-service/internal/delivery/http"
	"github.com/consultation-service/internal/delivery/http/handler"
	"github.com/consultation-service/internal/infrastructure/bldrgst"
	"github.com/consultation-service/internal/infrastructure/juso"
	"github.com/consultation-service/internal/infrastructure/objectstore"
	"github.com/consultation-service/internal/pkg/logger"
	"github.com/consultation-service/internal/repository/cache"
	"github.com/consultation-service/internal/repository/postgres"
	redisRepo "github.com/consultation-service/internal/repository/redis"
	"github.com/consultation-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Consultation Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	consultationRepo := postgres.NewConsultationRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := cache.NewSessionRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	// Внешние API и объектное хранилище
	addressRepo := juso.NewClient(&cfg.Juso, log)
	buildingRepo := bldrgst.NewClient(&cfg.BldRgst, log)
	storageRepo, err := objectstore.New(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	addressUC := usecase.NewAddressUseCase(addressRepo, log)
	buildingUC := usecase.NewBuildingUseCase(buildingRepo, log)

	consultationUC := usecase.NewConsultationUseCase(
		consultationRepo,
		streamRepo,
		log,
	)

	attachmentUC := usecase.NewAttachmentUseCase(
		storageRepo,
		consultationRepo,
		&cfg.Storage,
		&cfg.Upload,
		log,
	)

	adminAuthUC := usecase.NewAdminAuthUseCase(
		adminRepo,
		sessionRepo,
		&cfg.Auth,
		log,
	)

	adminUC := usecase.NewAdminUseCase(
		consultationRepo,
		userRepo,
		adminRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	addressHandler := handler.NewAddressHandler(addressUC, log)
	buildingHandler := handler.NewBuildingHandler(buildingUC, log)
	consultationHandler := handler.NewConsultationHandler(consultationUC, log)
	attachmentHandler := handler.NewAttachmentHandler(attachmentUC, log)
	adminAuthHandler := handler.NewAdminAuthHandler(adminAuthUC, &cfg.Auth, log)
	adminHandler := handler.NewAdminHandler(adminUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		addressHandler,
		buildingHandler,
		consultationHandler,
		attachmentHandler,
		adminAuthHandler,
		adminHandler,
		adminAuthUC,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
