package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/delivery/http/handler"
	"github.com/consultation-service/internal/delivery/http/middleware"
	"github.com/consultation-service/internal/usecase"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	addressHandler      *handler.AddressHandler
	buildingHandler     *handler.BuildingHandler
	consultationHandler *handler.ConsultationHandler
	attachmentHandler   *handler.AttachmentHandler
	adminAuthHandler    *handler.AdminAuthHandler
	adminHandler        *handler.AdminHandler

	adminAuthUC *usecase.AdminAuthUseCase
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	addressHandler *handler.AddressHandler,
	buildingHandler *handler.BuildingHandler,
	consultationHandler *handler.ConsultationHandler,
	attachmentHandler *handler.AttachmentHandler,
	adminAuthHandler *handler.AdminAuthHandler,
	adminHandler *handler.AdminHandler,
	adminAuthUC *usecase.AdminAuthUseCase,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Consultation Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    12 * 1024 * 1024, // multipart с файлом до 10MB
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                 app,
		config:              cfg,
		logger:              logger,
		addressHandler:      addressHandler,
		buildingHandler:     buildingHandler,
		consultationHandler: consultationHandler,
		attachmentHandler:   attachmentHandler,
		adminAuthHandler:    adminAuthHandler,
		adminHandler:        adminHandler,
		adminAuthUC:         adminAuthUC,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Публичные справочные маршруты
	api.Get("/juso/search", s.addressHandler.Search)
	api.Get("/building/title", s.buildingHandler.GetTitleInfo)

	// Маршруты аутентифицированного пользователя
	userAuth := middleware.UserAuth(s.config.Auth.JWTSecret)

	consultations := api.Group("/consultations", userAuth)
	consultations.Post("/", s.consultationHandler.Create)
	consultations.Get("/", s.consultationHandler.List)
	consultations.Get("/:id", s.consultationHandler.Get)
	consultations.Patch("/:id", s.consultationHandler.Update)
	consultations.Delete("/:id", s.consultationHandler.Delete)

	attachments := api.Group("/attachments", userAuth)
	attachments.Post("/", s.attachmentHandler.Upload)
	attachments.Get("/url", s.attachmentHandler.SignedURL)
	attachments.Delete("/", s.attachmentHandler.Delete)

	// Админская консоль: login/verify/logout живут до sessionAuth,
	// остальное закрыто сессией
	admin := api.Group("/admin")
	admin.Post("/auth/login", s.adminAuthHandler.Login)
	admin.Get("/auth/verify", s.adminAuthHandler.Verify)
	admin.Post("/auth/logout", s.adminAuthHandler.Logout)

	sessionAuth := middleware.AdminAuth(s.adminAuthUC)
	admin.Post("/auth/2fa/setup", sessionAuth, s.adminAuthHandler.Setup2FA)
	admin.Post("/auth/2fa/verify", sessionAuth, s.adminAuthHandler.Verify2FA)
	admin.Post("/auth/2fa/disable", sessionAuth, s.adminAuthHandler.Disable2FA)

	admin.Get("/consultations", sessionAuth, s.adminHandler.ListConsultations)
	admin.Get("/consultations/:id", sessionAuth, s.adminHandler.GetConsultation)
	admin.Get("/users", sessionAuth, s.adminHandler.ListUsers)
	admin.Get("/users/:userId/consultations", sessionAuth, s.adminHandler.ListUserConsultations)
	admin.Get("/admins", sessionAuth, s.adminHandler.ListAdmins)
	admin.Post("/admins", sessionAuth, s.adminHandler.CreateAdmin)
	admin.Patch("/admins/:id", sessionAuth, s.adminHandler.ChangePassword)
	admin.Delete("/admins/:id", sessionAuth, s.adminHandler.DeleteAdmin)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
