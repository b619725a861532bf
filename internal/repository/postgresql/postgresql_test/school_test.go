package postgresql_test

import (
	"context"
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolRepository(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewSchoolRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, school.ErrSettingsNotFound)

	stamped, err := repo.UpdateStampPath(ctx, "school/stamp.png")
	require.NoError(t, err)
	require.NotNil(t, stamped.StampPath)

	first, err := repo.Upsert(ctx, school.UpsertSettingsRequest{SchoolName: "SMPN 1", PrincipalName: "Budi"})
	require.NoError(t, err)
	assert.Equal(t, stamped.ID, first.ID)
	assert.Equal(t, "school/stamp.png", *first.StampPath)

	second, err := repo.Upsert(ctx, school.UpsertSettingsRequest{SchoolName: "SMPN 2", PrincipalName: "Ani", City: "Pontianak"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	signed, err := repo.UpdatePrincipalSignaturePath(ctx, "school/sig.png")
	require.NoError(t, err)
	assert.Equal(t, "SMPN 2", signed.SchoolName)
	assert.Equal(t, "school/sig.png", *signed.PrincipalSignaturePath)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pontianak", got.City)
}
