package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/usecase/dto"
)

// BuildingUseCase - use case получения сводки реестра зданий
type BuildingUseCase struct {
	registryRepo repository.BuildingRegistryRepository
	logger       *zap.Logger
}

// NewBuildingUseCase - создание нового BuildingUseCase
func NewBuildingUseCase(registryRepo repository.BuildingRegistryRepository, logger *zap.Logger) *BuildingUseCase {
	return &BuildingUseCase{
		registryRepo: registryRepo,
		logger:       logger,
	}
}

// GetTitleInfo - запрос выписки по пятисоставному коду участка.
// bun/ji нормализуются до 4 знаков до обращения к upstream.
func (uc *BuildingUseCase) GetTitleInfo(ctx context.Context, req dto.BuildingTitleRequest) (*dto.BuildingTitleResponse, error) {
	code := domain.AddressCode{
		SigunguCd: req.SigunguCd,
		BjdongCd:  req.BjdongCd,
		PlatGbCd:  req.PlatGbCd,
		Bun:       utils.PadLotNumber(req.Bun),
		Ji:        utils.PadLotNumber(req.Ji),
	}

	info, err := uc.registryRepo.GetTitleInfo(ctx, code)
	if err != nil {
		uc.logger.Warn("Building registry lookup failed",
			zap.String("address_id", code.ID()),
			zap.Error(err))
		return nil, err
	}

	return &dto.BuildingTitleResponse{
		Summary:  Summarize(info),
		Building: *info,
	}, nil
}

// Summarize строит компактное представление выписки для отображения.
func Summarize(info *domain.BuildingInfo) domain.BuildingSummary {
	return domain.BuildingSummary{
		MainPurpose: info.MainPurpsCdNm,
		TotalArea:   info.TotArea,
		PlotArea:    info.PlatArea,
		Floors: domain.BuildingFloor{
			Ground:      info.GroundFloorCnt,
			Underground: info.UgrndFloorCnt,
		},
		Households: info.HhldCnt,
	}
}
