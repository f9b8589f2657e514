package repository

import (
	"context"
	"time"
)

// SessionRepository - хранилище админских сессий (redis, TTL 8 часов).
type SessionRepository interface {
	// Create сохраняет сессию и возвращает её идентификатор.
	Create(ctx context.Context, adminID string, ttl time.Duration) (string, error)

	// Get возвращает id администратора по id сессии; "" если сессии нет.
	Get(ctx context.Context, sessionID string) (string, error)

	Delete(ctx context.Context, sessionID string) error
}
