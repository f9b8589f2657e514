package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/delivery/http/middleware"
	appErrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/usecase"
)

// AttachmentHandler - обработчик загрузки и выдачи вложений
type AttachmentHandler struct {
	attachmentUC *usecase.AttachmentUseCase
	logger       *zap.Logger
}

// NewAttachmentHandler - создание нового AttachmentHandler
func NewAttachmentHandler(attachmentUC *usecase.AttachmentUseCase, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentUC: attachmentUC,
		logger:       logger,
	}
}

// Upload godoc
// @Summary Загрузка вложения
// @Description Принимает файл multipart-формой, проверяет тип и размер, ужимает крупные изображения и кладёт объект в хранилище
// @Tags Attachment
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл (изображение, PDF, DOC, HWP; до 10MB)"
// @Param consultationId formData string false "Идентификатор заявки; без него файл попадает во временную директорию"
// @Param existingCount formData int false "Сколько файлов уже загружено во временную директорию; для существующей заявки лимит считается по сохранённой строке"
// @Success 201 {object} utils.SuccessResponse{data=dto.AttachmentUploadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attachments [post]
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithMessage("업로드할 파일을 선택해주세요."))
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return utils.SendError(c, appErrors.ErrStorageError)
	}
	defer file.Close()

	consultationID := c.FormValue("consultationId")
	existingCount, _ := strconv.Atoi(c.FormValue("existingCount"))

	result, err := h.attachmentUC.Upload(
		c.Context(),
		user.ID,
		consultationID,
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
		existingCount,
	)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// SignedURL godoc
// @Summary Временная ссылка на скачивание
// @Description Выдаёт подписанную ссылку на объект вызывающего пользователя. Ссылка действует один час
// @Tags Attachment
// @Produce json
// @Param path query string true "Путь объекта в хранилище"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attachments/url [get]
func (h *AttachmentHandler) SignedURL(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	path := c.Query("path")
	if path == "" {
		return utils.SendError(c, appErrors.ErrValidation.WithMessage("파일 경로가 필요합니다."))
	}

	url, err := h.attachmentUC.SignedURL(c.Context(), user.ID, path)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"url": url}, nil)
}

// Delete godoc
// @Summary Удаление вложения
// @Description Удаляет объект вызывающего пользователя из хранилища
// @Tags Attachment
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attachments [delete]
func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.AuthUserFromCtx(c)
	if !ok {
		return utils.SendError(c, appErrors.ErrUnauthorized)
	}

	var req struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return utils.SendError(c, appErrors.ErrValidation.WithMessage("파일 경로가 필요합니다."))
	}

	if err := h.attachmentUC.Delete(c.Context(), user.ID, req.Path); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
