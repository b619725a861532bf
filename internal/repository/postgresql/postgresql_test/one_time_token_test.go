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

func TestOneTimeTokenRepository_Consume(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewOneTimeTokenRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "reset@example.com")
	expires := time.Now().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposePasswordReset, "reset-1", expires))
	require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposeEmailVerification, "verify-1", expires))

	t.Run("wrong purpose is rejected", func(t *testing.T) {
		_, err := repo.Consume(ctx, auth.PurposeEmailVerification, "reset-1")
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)
	})

	t.Run("token is single use", func(t *testing.T) {
		userID, err := repo.Consume(ctx, auth.PurposePasswordReset, "reset-1")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, userID)

		_, err = repo.Consume(ctx, auth.PurposePasswordReset, "reset-1")
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)
	})

	t.Run("newer link retires the older one", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposeEmailVerification, "verify-2", expires))

		_, err := repo.Consume(ctx, auth.PurposeEmailVerification, "verify-1")
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)

		userID, err := repo.Consume(ctx, auth.PurposeEmailVerification, "verify-2")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, userID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposePasswordReset, "reset-old", time.Now().Add(-time.Minute)))
		_, err := repo.Consume(ctx, auth.PurposePasswordReset, "reset-old")
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)
	})
}

func TestOneTimeTokenRepository_DeleteStale(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewOneTimeTokenRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "stale-link@example.com")
	require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposePasswordReset, "live", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, owner.ID, auth.PurposeEmailVerification, "expired", time.Now().Add(-48*time.Hour)))

	deleted, err := repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	userID, err := repo.Consume(ctx, auth.PurposePasswordReset, "live")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, userID)
}
