package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/delivery/http/middleware"
	appErrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// ConsultationHandler - обработчик заявок на консультацию
type ConsultationHandler struct {
	consultationUC *usecase.ConsultationUseCase
	logger         *zap.Logger
}

// NewConsultationHandler - создание нового ConsultationHandler
func NewConsultationHandler(consultationUC *usecase.ConsultationUseCase, logger *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUC: consultationUC,
		logger:         logger,
	}
}

// Create godoc
// @Summary Подача заявки на консультацию
// @Description Создаёт заявку от аутентифицированного пользователя. При отсутствии данных реестра зданий подставляется запись-заглушка, уведомление уходит в фоновый канал
// @Tags Consultation
// @Accept json
// @Produce json
// @Param request body dto.ConsultationCreateRequest true "Данные заявки"
// @Success 201 {object} utils.SuccessResponse{data=dto.ConsultationCreateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/consultations [post]
func (h *ConsultationHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	var req dto.ConsultationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}

	result, err := h.consultationUC.Create(c.Context(), user, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// List godoc
// @Summary Заявки текущего пользователя
// @Description Возвращает неудалённые заявки вызывающего пользователя, новые первыми
// @Tags Consultation
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ConsultationResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/consultations [get]
func (h *ConsultationHandler) List(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	items, err := h.consultationUC.ListByUser(c.Context(), user.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// Get godoc
// @Summary Заявка по идентификатору
// @Description Возвращает заявку, если она принадлежит вызывающему пользователю
// @Tags Consultation
// @Produce json
// @Param id path string true "Идентификатор заявки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ConsultationResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/consultations/{id} [get]
func (h *ConsultationHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	result, err := h.consultationUC.GetByID(c.Context(), c.Params("id"), user.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Update godoc
// @Summary Изменение заявки владельцем
// @Description Частично изменяет заявку. nil-поля не трогаются, заявка другого пользователя неотличима от несуществующей
// @Tags Consultation
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор заявки"
// @Param request body dto.ConsultationUpdateRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=dto.ConsultationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/consultations/{id} [patch]
func (h *ConsultationHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	var req dto.ConsultationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, appErrors.ErrInvalidRequestBody)
	}

	result, err := h.consultationUC.Update(c.Context(), c.Params("id"), user.ID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Мягкое удаление заявки владельцем
// @Description Помечает заявку удалённой. Физического удаления не происходит
// @Tags Consultation
// @Produce json
// @Param id path string true "Идентификатор заявки"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/consultations/{id} [delete]
func (h *ConsultationHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	if err := h.consultationUC.Delete(c.Context(), c.Params("id"), user.ID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
