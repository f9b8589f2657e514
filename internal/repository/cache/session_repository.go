package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/consultation-service/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "admin_session:"

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionRepository создаёт хранилище админских сессий поверх redis.
// Сессия - непрозрачный uuid, привязанный к id администратора с TTL;
// истёкшая сессия просто исчезает из redis.
func NewSessionRepository(r *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: r.Client(),
		logger: r.logger,
	}
}

func (s *sessionRepository) Create(ctx context.Context, adminID string, ttl time.Duration) (string, error) {
	sessionID := uuid.New().String()

	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, adminID, ttl).Err(); err != nil {
		s.logger.Error("Failed to store admin session",
			zap.String("admin_id", adminID),
			zap.Error(err))
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

func (s *sessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	adminID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		s.logger.Error("Failed to read admin session", zap.Error(err))
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return adminID, nil
}

func (s *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		s.logger.Error("Failed to delete admin session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
