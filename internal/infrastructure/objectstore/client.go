package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Client - S3-совместимое хранилище вложений.
type Client struct {
	minio  *minio.Client
	bucket string
	logger *zap.Logger
}

func New(cfg *config.StorageConfig, logger *zap.Logger) (repository.StorageRepository, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Info("Object storage client initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return &Client{
		minio:  minioClient,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// Upload загружает объект; upsert запрещён семантикой путей (каждый путь
// содержит timestamp).
func (c *Client) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := c.minio.PutObject(ctx, c.bucket, path, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		c.logger.Error("Failed to upload object",
			zap.String("path", path),
			zap.Error(err))
		return "", fmt.Errorf("storage upload failed: %w", err)
	}

	c.logger.Debug("Object uploaded",
		zap.String("path", info.Key),
		zap.Int64("size", info.Size))
	return info.Key, nil
}

// SignedURL возвращает временную ссылку на скачивание.
func (c *Client) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	u, err := c.minio.PresignedGetObject(ctx, c.bucket, path, expiry, reqParams)
	if err != nil {
		c.logger.Error("Failed to presign object URL",
			zap.String("path", path),
			zap.Error(err))
		return "", fmt.Errorf("storage presign failed: %w", err)
	}
	return u.String(), nil
}

func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.minio.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		c.logger.Error("Failed to delete object",
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("storage delete failed: %w", err)
	}

	c.logger.Debug("Object deleted", zap.String("path", path))
	return nil
}
