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

// BuildingHandler - обработчик запросов к реестру зданий
type BuildingHandler struct {
	buildingUC *usecase.BuildingUseCase
	logger     *zap.Logger
}

// NewBuildingHandler - создание нового BuildingHandler
func NewBuildingHandler(buildingUC *usecase.BuildingUseCase, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{
		buildingUC: buildingUC,
		logger:     logger,
	}
}

// GetTitleInfo godoc
// @Summary Выписка из государственного реестра зданий
// @Description Запрашивает сводку по зданию (назначение, площади, этажность) по пятисоставному коду участка. bun/ji выравниваются до 4 знаков автоматически
// @Tags Building
// @Produce json
// @Param sigunguCd query string true "Код сигунгу (5 цифр)"
// @Param bjdongCd query string true "Код бопчжондона (5 цифр)"
// @Param platGbCd query string true "Тип участка (0, 1, 2)"
// @Param bun query string true "Основной номер участка"
// @Param ji query string false "Дополнительный номер участка"
// @Success 200 {object} utils.SuccessResponse{data=dto.BuildingTitleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/building/title [get]
func (h *BuildingHandler) GetTitleInfo(c *fiber.Ctx) error {
	var req dto.BuildingTitleRequest
	req.SigunguCd = c.Query("sigunguCd")
	req.BjdongCd = c.Query("bjdongCd")
	req.PlatGbCd = c.Query("platGbCd")
	req.Bun = c.Query("bun")
	req.Ji = c.Query("ji")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, appErrors.ErrValidation.WithDetails(validator.Details(err)))
	}

	result, err := h.buildingUC.GetTitleInfo(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
