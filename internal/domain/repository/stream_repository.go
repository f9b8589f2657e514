package repository

import (
	"context"

	"github.com/consultation-service/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams.
type StreamRepository interface {
	// PublishToStream публикует сообщение в стрим.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// ConsumeBatch читает до count непрочитанных сообщений (неблокирующе).
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создаёт consumer group.
	CreateConsumerGroup(ctx context.Context, stream, group string) error
}
