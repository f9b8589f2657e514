package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/delivery/http/middleware"
	appErrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/pkg/validator"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// AdminHandler - обработчик админской консоли
type AdminHandler struct {
	adminUC *usecase.AdminUseCase
	logger  *zap.Logger
}

// NewAdminHandler - создание нового AdminHandler
func NewAdminHandler(adminUC *usecase.AdminUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		logger:  logger,
	}
}

// ListConsultations godoc
// @Summary Список заявок с фильтрами
// @Description Возвращает неудалённые заявки по диапазону дат и частичным совпадениям имени, телефона, адреса
// @Tags Admin
// @Produce json
// @Param dateFrom query string false "Начало диапазона (YYYY-MM-DD)"
// @Param dateTo query string false "Конец диапазона (YYYY-MM-DD)"
// @Param name query string false "Частичное совпадение имени"
// @Param phone query string false "Частичное совпадение телефона"
// @Param address query string false "Частичное совпадение адреса"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(15)
// @Success 200 {object} utils.SuccessResponse{data=dto.ConsultationListResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/consultations [get]
func (h *AdminHandler) ListConsultations(c *fiber.Ctx) error {
	var req dto.AdminConsultationListRequest
	req.DateFrom = c.Query("dateFrom")
	req.DateTo = c.Query("dateTo")
	req.Name = c.Query("name")
	req.Phone = c.Query("phone")
	req.Address = c.Query("address")
	req.Page = c.QueryInt("page", 1)
	req.Limit = c.QueryInt("limit", 15)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.adminUC.ListConsultations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// GetConsultation godoc
// @Summary Заявка целиком
// @Tags Admin
// @Produce json
// @Param id path string true "Идентификатор заявки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ConsultationResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/consultations/{id} [get]
func (h *AdminHandler) GetConsultation(c *fiber.Ctx) error {
	result, err := h.adminUC.GetConsultation(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListUsers godoc
// @Summary Зарегистрированные пользователи
// @Description Возвращает пользователей со счётчиками их заявок
// @Tags Admin
// @Produce json
// @Param email query string false "Частичное совпадение email"
// @Param dateFrom query string false "Начало диапазона регистрации (YYYY-MM-DD)"
// @Param dateTo query string false "Конец диапазона регистрации (YYYY-MM-DD)"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(15)
// @Success 200 {object} utils.SuccessResponse{data=dto.UserListResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	req.Email = c.Query("email")
	req.DateFrom = c.Query("dateFrom")
	req.DateTo = c.Query("dateTo")
	req.Page = c.QueryInt("page", 1)
	req.Limit = c.QueryInt("limit", 15)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.adminUC.ListUsers(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// ListUserConsultations godoc
// @Summary Заявки конкретного пользователя
// @Tags Admin
// @Produce json
// @Param userId path string true "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ConsultationResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/users/{userId}/consultations [get]
func (h *AdminHandler) ListUserConsultations(c *fiber.Ctx) error {
	items, err := h.adminUC.ListUserConsultations(c.Context(), c.Params("userId"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// ListAdmins godoc
// @Summary Учётные записи администраторов
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AdminResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/admins [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	items, err := h.adminUC.ListAdmins(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// CreateAdmin godoc
// @Summary Создание администратора
// @Description Создаёт учётную запись. Пароль должен содержать не менее 8 символов, включая заглавную и строчную буквы, цифру и спецсимвол
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AdminCreateRequest true "Новая учётная запись"
// @Success 201 {object} utils.SuccessResponse{data=dto.AdminResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/admins [post]
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.AdminCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.adminUC.CreateAdmin(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// ChangePassword godoc
// @Summary Смена пароля администратора
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор администратора"
// @Param request body dto.AdminPasswordChangeRequest true "Текущий и новый пароли"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/admins/{id} [patch]
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.AdminPasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	if err := h.adminUC.ChangePassword(c.Context(), c.Params("id"), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"updated": true}, nil)
}

// DeleteAdmin godoc
// @Summary Удаление администратора
// @Description Удаляет учётную запись. Удаление собственного аккаунта запрещено
// @Tags Admin
// @Produce json
// @Param id path string true "Идентификатор администратора"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/admins/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	caller, ok := middleware.AdminFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrAdminUnauthorized)
	}

	if err := h.adminUC.DeleteAdmin(c.Context(), caller.ID, c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
