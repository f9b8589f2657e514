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

// MockAddressLookupRepository is a mock of AddressLookupRepository
type MockAddressLookupRepository struct {
	mock.Mock
}

func (m *MockAddressLookupRepository) Search(ctx context.Context, query string, page int) ([]*domain.AddressSearchResult, *domain.AddressPage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.AddressSearchResult), args.Get(1).(*domain.AddressPage), args.Error(2)
}

func TestAddressUseCase_Search(t *testing.T) {
	lookup := new(MockAddressLookupRepository)
	uc := usecase.NewAddressUseCase(lookup, zap.NewNop())

	results := []*domain.AddressSearchResult{
		{
			ID:       "11680-10100-0-0649-0005",
			RoadAddr: "서울특별시 강남구 테헤란로 123",
			AddressCode: domain.AddressCode{
				SigunguCd: "11680", BjdongCd: "10100", PlatGbCd: "0", Bun: "0649", Ji: "0005",
			},
		},
	}
	page := &domain.AddressPage{CurrentPage: 1, TotalCount: 1, CountPerPage: 10}
	lookup.On("Search", mock.Anything, "테헤란로 123", 1).Return(results, page, nil)

	resp, err := uc.Search(context.Background(), dto.AddressSearchRequest{Keyword: "테헤란로 123"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "11680-10100-0-0649-0005", resp.Results[0].ID)
	assert.Equal(t, 1, resp.Page.TotalCount)
}

func TestAddressUseCase_Search_TrimsKeyword(t *testing.T) {
	lookup := new(MockAddressLookupRepository)
	uc := usecase.NewAddressUseCase(lookup, zap.NewNop())

	lookup.On("Search", mock.Anything, "테헤란로", 2).
		Return([]*domain.AddressSearchResult{}, &domain.AddressPage{CurrentPage: 2}, nil)

	resp, err := uc.Search(context.Background(), dto.AddressSearchRequest{Keyword: "  테헤란로  ", Page: 2})

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	lookup.AssertExpectations(t)
}

func TestAddressUseCase_Search_ShortKeyword(t *testing.T) {
	lookup := new(MockAddressLookupRepository)
	uc := usecase.NewAddressUseCase(lookup, zap.NewNop())

	_, err := uc.Search(context.Background(), dto.AddressSearchRequest{Keyword: "서"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*errors.AppError).Code)
	lookup.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddressUseCase_Search_UpstreamError(t *testing.T) {
	lookup := new(MockAddressLookupRepository)
	uc := usecase.NewAddressUseCase(lookup, zap.NewNop())

	lookup.On("Search", mock.Anything, "테헤란로", 1).
		Return(nil, nil, errors.ErrAddressSearchFailed)

	_, err := uc.Search(context.Background(), dto.AddressSearchRequest{Keyword: "테헤란로"})

	assert.ErrorIs(t, err, errors.ErrAddressSearchFailed)
}
