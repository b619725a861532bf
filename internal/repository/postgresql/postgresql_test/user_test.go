package postgresql_test

import (
	"context"
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *database.DB, email string) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Guru Test",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "guru@example.com")
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.SignaturePath)

	t.Run("lookup by email is case insensitive", func(t *testing.T) {
		u, err := repo.GetByEmail(ctx, "GURU@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)

		exists, err := repo.ExistsByEmail(ctx, "Guru@Example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("update profile", func(t *testing.T) {
		u, err := repo.UpdateProfile(ctx, created.ID, user.UpdateProfileRequest{
			Name:     "Siti Aminah",
			NIP:      "198501012010012001",
			Position: "Guru Ahli Pertama",
			WorkUnit: "SMPN 1",
			OrgUnit:  "Dinas Pendidikan",
		})
		require.NoError(t, err)
		assert.Equal(t, "Siti Aminah", u.Name)
		assert.Equal(t, "198501012010012001", u.NIP)
	})

	t.Run("update password and signature", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, created.ID, "new-hash"))
		require.NoError(t, repo.UpdateSignaturePath(ctx, created.ID, "signatures/a.png"))

		u, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", u.PasswordHash)
		require.NotNil(t, u.SignaturePath)
		assert.Equal(t, "signatures/a.png", *u.SignaturePath)

		err = repo.UpdatePassword(ctx, "00000000-0000-0000-0000-000000000000", "x")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserRepository_MarkEmailVerified(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "verify@example.com")
	assert.Nil(t, created.EmailVerifiedAt)

	require.NoError(t, repo.MarkEmailVerified(ctx, created.ID))
	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.EmailVerifiedAt)

	// a second confirmation keeps the original timestamp
	require.NoError(t, repo.MarkEmailVerified(ctx, created.ID))
	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.EmailVerifiedAt.Equal(*second.EmailVerifiedAt))

	assert.ErrorIs(t, repo.MarkEmailVerified(ctx, "0198c0de-0000-7000-8000-000000000000"), user.ErrUserNotFound)
}
