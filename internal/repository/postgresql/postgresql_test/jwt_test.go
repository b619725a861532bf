package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRepository(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewJWTRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "token@example.com")
	session := auth.SessionTrackingRequest{UserAgent: "test", IPAddress: "127.0.0.1"}
	expires := time.Now().Add(time.Hour).Unix()

	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "token-a", expires, session))
	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "token-b", expires, session))
	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "token-old", time.Now().Add(-time.Minute).Unix(), session))

	userID, revoked, err := repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, owner.ID, userID)

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-old")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "token-a"))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.RevokeAllForUser(ctx, owner.ID))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestJWTRepository_DeleteStale(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewJWTRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "stale@example.com")
	session := auth.SessionTrackingRequest{}

	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "live", time.Now().Add(time.Hour).Unix(), session))
	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "expired", time.Now().Add(-48*time.Hour).Unix(), session))

	deleted, err := repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, revoked, err := repo.IsRefreshTokenRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}
