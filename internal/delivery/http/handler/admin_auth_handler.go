package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/delivery/http/middleware"
	appErrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/pkg/validator"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// AdminAuthHandler - обработчик входа администратора и управления 2FA
type AdminAuthHandler struct {
	authUC  *usecase.AdminAuthUseCase
	authCfg *config.AuthConfig
	logger  *zap.Logger
}

// NewAdminAuthHandler - создание нового AdminAuthHandler
func NewAdminAuthHandler(authUC *usecase.AdminAuthUseCase, authCfg *config.AuthConfig, logger *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		authUC:  authUC,
		authCfg: authCfg,
		logger:  logger,
	}
}

// Login godoc
// @Summary Вход администратора
// @Description Проверяет логин и пароль. Если для аккаунта обязательна двухфакторка, первый ответ содержит requiresTwoFactor и ожидается повторный запрос с полем otp. Успешный вход ставит HttpOnly cookie сессии
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Учётные данные"
// @Success 200 {object} utils.SuccessResponse{data=dto.AdminLoginResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, sessionID, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	if sessionID != "" {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.AdminSessionCookie,
			Value:    sessionID,
			Expires:  time.Now().Add(h.authCfg.AdminSessionTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}

	return utils.SendSuccess(c, result, nil)
}

// Verify godoc
// @Summary Проверка админской сессии
// @Tags AdminAuth
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AdminResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/auth/verify [get]
func (h *AdminAuthHandler) Verify(c *fiber.Ctx) error {
	admin, err := h.authUC.Verify(c.Context(), c.Cookies(middleware.AdminSessionCookie))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, admin, nil)
}

// Logout godoc
// @Summary Выход администратора
// @Description Удаляет сессию и сбрасывает cookie
// @Tags AdminAuth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authUC.Logout(c.Context(), c.Cookies(middleware.AdminSessionCookie)); err != nil {
		h.logger.Warn("Failed to delete admin session", zap.Error(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return utils.SendSuccess(c, fiber.Map{"loggedOut": true}, nil)
}

// Setup2FA godoc
// @Summary Генерация TOTP-секрета
// @Description Выдаёт секрет, otpauth-ссылку и QR-код. Секрет сохраняется только после подтверждения кодом
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.TwoFactorSetupRequest true "Целевой администратор"
// @Success 200 {object} utils.SuccessResponse{data=dto.TwoFactorSetupResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/auth/2fa/setup [post]
func (h *AdminAuthHandler) Setup2FA(c *fiber.Ctx) error {
	var req dto.TwoFactorSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.authUC.Setup2FA(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Verify2FA godoc
// @Summary Подтверждение и включение 2FA
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.TwoFactorVerifyRequest true "Секрет и код из аутентификатора"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/auth/2fa/verify [post]
func (h *AdminAuthHandler) Verify2FA(c *fiber.Ctx) error {
	var req dto.TwoFactorVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	if err := h.authUC.Verify2FA(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"enabled": true}, nil)
}

// Disable2FA godoc
// @Summary Отключение 2FA
// @Description Отключает двухфакторку текущего администратора после повторной проверки пароля
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.TwoFactorDisableRequest true "Пароль для подтверждения"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/auth/2fa/disable [post]
func (h *AdminAuthHandler) Disable2FA(c *fiber.Ctx) error {
	admin, ok := middleware.AdminFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrAdminUnauthorized)
	}

	var req dto.TwoFactorDisableRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	if err := h.authUC.Disable2FA(c.Context(), admin.ID, req.Password); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"disabled": true}, nil)
}
