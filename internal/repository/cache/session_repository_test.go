package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSessionRepo(t *testing.T) (*miniredis.Miniredis, *sessionRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &sessionRepository{
		client: client,
		logger: zap.NewNop(),
	}
	return mr, repo
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	mr, repo := setupSessionRepo(t)
	ctx := context.Background()

	sessionID, err := repo.Create(ctx, "admin-1", 8*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.True(t, mr.Exists("admin_session:"+sessionID))

	adminID, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", adminID)
}

func TestSessionRepository_Get_Missing(t *testing.T) {
	_, repo := setupSessionRepo(t)

	adminID, err := repo.Get(context.Background(), "no-such-session")

	require.NoError(t, err)
	assert.Empty(t, adminID)
}

func TestSessionRepository_Get_Expired(t *testing.T) {
	mr, repo := setupSessionRepo(t)
	ctx := context.Background()

	sessionID, err := repo.Create(ctx, "admin-1", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	adminID, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, adminID)
}

func TestSessionRepository_Delete(t *testing.T) {
	_, repo := setupSessionRepo(t)
	ctx := context.Background()

	sessionID, err := repo.Create(ctx, "admin-1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, sessionID))

	adminID, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, adminID)
}
