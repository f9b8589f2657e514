package repository

import (
	"context"
	"io"
	"time"
)

// StorageRepository - объектное хранилище вложений.
type StorageRepository interface {
	// Upload загружает объект по пути и возвращает путь в хранилище.
	Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error)

	// SignedURL возвращает временную ссылку на скачивание.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Delete(ctx context.Context, path string) error
}
