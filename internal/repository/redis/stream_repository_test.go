package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	redisRepo "github.com/consultation-service/internal/repository/redis"
)

func setupStreamRepo(t *testing.T) (*goredis.Client, repository.StreamRepository) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	// Отрицательный blockTimeout отключает BLOCK: тесты не должны ждать.
	repo := redisRepo.NewStreamRepository(client, -1, zap.NewNop())
	return client, repo
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	_, repo := setupStreamRepo(t)
	ctx := context.Background()

	stream := domain.StreamConsultationNotify
	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "workers"))

	event := domain.ConsultationCreatedEvent{
		ConsultationID: "cons-1",
		Name:           "홍길동",
		Phone:          "010-1234-5678",
		Address:        "서울특별시 강남구 테헤란로 123",
		MainPurps:      "단독주택",
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.PublishToStream(ctx, stream, event))

	messages, err := repo.ConsumeBatch(ctx, stream, "workers", "worker-1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	var decoded domain.ConsultationCreatedEvent
	require.NoError(t, json.Unmarshal([]byte(messages[0].Data), &decoded))
	assert.Equal(t, "cons-1", decoded.ConsultationID)
	assert.Equal(t, "홍길동", decoded.Name)
}

func TestStreamRepository_CreateConsumerGroup_Idempotent(t *testing.T) {
	_, repo := setupStreamRepo(t)
	ctx := context.Background()

	stream := domain.StreamConsultationNotify
	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "workers"))
	// Повторный вызов не должен возвращать ошибку BUSYGROUP
	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "workers"))
}

func TestStreamRepository_ConsumeBatch_Empty(t *testing.T) {
	_, repo := setupStreamRepo(t)
	ctx := context.Background()

	stream := domain.StreamConsultationNotify
	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "workers"))

	messages, err := repo.ConsumeBatch(ctx, stream, "workers", "worker-1", 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestStreamRepository_AckMessage(t *testing.T) {
	client, repo := setupStreamRepo(t)
	ctx := context.Background()

	stream := domain.StreamConsultationNotify
	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "workers"))
	require.NoError(t, repo.PublishToStream(ctx, stream, map[string]string{"k": "v"}))

	messages, err := repo.ConsumeBatch(ctx, stream, "workers", "worker-1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	require.NoError(t, repo.AckMessage(ctx, stream, "workers", messages[0].ID))

	pending, err := client.XPending(ctx, stream, "workers").Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}
