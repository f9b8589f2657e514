package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

// MockBuildingRegistryRepository is a mock of BuildingRegistryRepository
type MockBuildingRegistryRepository struct {
	mock.Mock
}

func (m *MockBuildingRegistryRepository) GetTitleInfo(ctx context.Context, code domain.AddressCode) (*domain.BuildingInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildingInfo), args.Error(1)
}

func TestBuildingUseCase_GetTitleInfo(t *testing.T) {
	registry := new(MockBuildingRegistryRepository)
	uc := usecase.NewBuildingUseCase(registry, zap.NewNop())

	totArea := 250.5
	ground := 3
	underground := 1
	info := &domain.BuildingInfo{
		MainPurpsCdNm:  "단독주택",
		TotArea:        &totArea,
		GroundFloorCnt: &ground,
		UgrndFloorCnt:  &underground,
	}

	// bun/ji выравниваются до 4 знаков перед обращением к реестру
	expected := domain.AddressCode{
		SigunguCd: "11680", BjdongCd: "10100", PlatGbCd: "0", Bun: "0649", Ji: "0005",
	}
	registry.On("GetTitleInfo", mock.Anything, expected).Return(info, nil)

	resp, err := uc.GetTitleInfo(context.Background(), dto.BuildingTitleRequest{
		SigunguCd: "11680",
		BjdongCd:  "10100",
		PlatGbCd:  "0",
		Bun:       "649",
		Ji:        "5",
	})

	require.NoError(t, err)
	assert.Equal(t, "단독주택", resp.Summary.MainPurpose)
	require.NotNil(t, resp.Summary.TotalArea)
	assert.Equal(t, 250.5, *resp.Summary.TotalArea)
	assert.Equal(t, 3, *resp.Summary.Floors.Ground)
	assert.Equal(t, 1, *resp.Summary.Floors.Underground)

	registry.AssertExpectations(t)
}

func TestBuildingUseCase_GetTitleInfo_NotFound(t *testing.T) {
	registry := new(MockBuildingRegistryRepository)
	uc := usecase.NewBuildingUseCase(registry, zap.NewNop())

	registry.On("GetTitleInfo", mock.Anything, mock.Anything).
		Return(nil, errors.ErrBuildingNotFound)

	_, err := uc.GetTitleInfo(context.Background(), dto.BuildingTitleRequest{
		SigunguCd: "11680",
		BjdongCd:  "10100",
		PlatGbCd:  "0",
		Bun:       "1",
		Ji:        "0",
	})

	assert.ErrorIs(t, err, errors.ErrBuildingNotFound)
}

func TestBuildingUseCase_GetTitleInfo_NullableNumericsPreserved(t *testing.T) {
	registry := new(MockBuildingRegistryRepository)
	uc := usecase.NewBuildingUseCase(registry, zap.NewNop())

	registry.On("GetTitleInfo", mock.Anything, mock.Anything).
		Return(&domain.BuildingInfo{MainPurpsCdNm: "근린생활시설"}, nil)

	resp, err := uc.GetTitleInfo(context.Background(), dto.BuildingTitleRequest{
		SigunguCd: "11680",
		BjdongCd:  "10100",
		PlatGbCd:  "0",
		Bun:       "1",
		Ji:        "0",
	})

	require.NoError(t, err)
	// Отсутствующие числовые значения остаются nil, не превращаются в 0
	assert.Nil(t, resp.Summary.TotalArea)
	assert.Nil(t, resp.Summary.Floors.Ground)
	assert.Nil(t, resp.Summary.Households)
}
