package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	appErrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/pkg/validator"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// AddressHandler - обработчик поиска адресов
type AddressHandler struct {
	addressUC *usecase.AddressUseCase
	logger    *zap.Logger
}

// NewAddressHandler - создание нового AddressHandler
func NewAddressHandler(addressUC *usecase.AddressUseCase, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		addressUC: addressUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Поиск адресов по тексту
// @Description Ищет адреса через государственный API juso.go.kr и возвращает кандидатов с нормализованными кодами участка (sigunguCd, bjdongCd, platGbCd, bun, ji)
// @Tags Address
// @Produce json
// @Param keyword query string true "Поисковый запрос (минимум 2 символа)"
// @Param page query int false "Номер страницы" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.AddressSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/juso/search [get]
func (h *AddressHandler) Search(c *fiber.Ctx) error {
	var req dto.AddressSearchRequest
	req.Keyword = c.Query("keyword")
	req.Page = c.QueryInt("page", 1)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.addressUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Page.TotalCount,
		Page:  result.Page.CurrentPage,
	})
}
