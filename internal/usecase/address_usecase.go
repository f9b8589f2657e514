package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/usecase/dto"
)

// AddressUseCase - use case поиска адресов
type AddressUseCase struct {
	lookupRepo repository.AddressLookupRepository
	logger     *zap.Logger
}

// NewAddressUseCase - создание нового AddressUseCase
func NewAddressUseCase(lookupRepo repository.AddressLookupRepository, logger *zap.Logger) *AddressUseCase {
	return &AddressUseCase{
		lookupRepo: lookupRepo,
		logger:     logger,
	}
}

// Search - поиск адресов по текстовому запросу
func (uc *AddressUseCase) Search(ctx context.Context, req dto.AddressSearchRequest) (*dto.AddressSearchResponse, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if len([]rune(keyword)) < 2 {
		return nil, errors.ErrValidation.WithMessage("검색어는 2자 이상 입력해주세요.")
	}

	// Установка значений по умолчанию
	page := req.Page
	if page < 1 {
		page = 1
	}

	results, pageInfo, err := uc.lookupRepo.Search(ctx, keyword, page)
	if err != nil {
		uc.logger.Error("Failed to search addresses",
			zap.String("keyword", keyword),
			zap.Error(err))
		return nil, err
	}

	// Преобразование в response
	items := make([]domain.AddressSearchResult, 0, len(results))
	for _, r := range results {
		items = append(items, *r)
	}

	return &dto.AddressSearchResponse{
		Results: items,
		Page:    *pageInfo,
	}, nil
}
