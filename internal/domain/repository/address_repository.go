package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// AddressLookupRepository - клиент государственного API поиска адресов.
// Нормализация несовместимых форм ответа остаётся за реализацией:
// остальная система видит только канонические записи.
type AddressLookupRepository interface {
	Search(ctx context.Context, query string, page int) ([]*domain.AddressSearchResult, *domain.AddressPage, error)
}

// BuildingRegistryRepository - клиент государственного реестра зданий.
type BuildingRegistryRepository interface {
	GetTitleInfo(ctx context.Context, code domain.AddressCode) (*domain.BuildingInfo, error)
}
