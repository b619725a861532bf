package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
)

const schoolColumns = `id, school_name, principal_name, principal_nip, city, principal_sig_path, stamp_path, updated_at`

type schoolRepositoryImpl struct {
	db *database.DB
}

func NewSchoolRepository(db *database.DB) school.SchoolRepository {
	return &schoolRepositoryImpl{db: db}
}

func scanSettings(row pgx.Row) (school.Settings, error) {
	var s school.Settings
	err := row.Scan(
		&s.ID,
		&s.SchoolName,
		&s.PrincipalName,
		&s.PrincipalNIP,
		&s.City,
		&s.PrincipalSignaturePath,
		&s.StampPath,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return school.Settings{}, school.ErrSettingsNotFound
		}
		return school.Settings{}, fmt.Errorf("failed to scan school settings: %w", err)
	}
	return s, nil
}

// Get implements school.SchoolRepository.
func (r *schoolRepositoryImpl) Get(ctx context.Context) (school.Settings, error) {
	q := GetQuerier(ctx, r.db)
	return scanSettings(q.QueryRow(ctx, `SELECT `+schoolColumns+` FROM school_settings WHERE singleton`))
}

// Upsert implements school.SchoolRepository.
func (r *schoolRepositoryImpl) Upsert(ctx context.Context, req school.UpsertSettingsRequest) (school.Settings, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return school.Settings{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO school_settings (id, singleton, school_name, principal_name, principal_nip, city, updated_at)
		VALUES ($1, TRUE, $2, $3, $4, $5, NOW())
		ON CONFLICT (singleton) DO UPDATE
		SET school_name = EXCLUDED.school_name,
		    principal_name = EXCLUDED.principal_name,
		    principal_nip = EXCLUDED.principal_nip,
		    city = EXCLUDED.city,
		    updated_at = NOW()
		RETURNING ` + schoolColumns

	return scanSettings(q.QueryRow(ctx, query, id.String(), req.SchoolName, req.PrincipalName, req.PrincipalNIP, req.City))
}

// UpdatePrincipalSignaturePath implements school.SchoolRepository.
func (r *schoolRepositoryImpl) UpdatePrincipalSignaturePath(ctx context.Context, path string) (school.Settings, error) {
	return r.upsertImage(ctx, "principal_sig_path", path)
}

// UpdateStampPath implements school.SchoolRepository.
func (r *schoolRepositoryImpl) UpdateStampPath(ctx context.Context, path string) (school.Settings, error) {
	return r.upsertImage(ctx, "stamp_path", path)
}

// upsertImage creates the settings row on first upload so images can be set before the text fields.
func (r *schoolRepositoryImpl) upsertImage(ctx context.Context, column, path string) (school.Settings, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return school.Settings{}, fmt.Errorf("failed to generate id: %w", err)
	}

	// column is one of two fixed identifiers, never user input
	query := fmt.Sprintf(`
		INSERT INTO school_settings (id, singleton, %[1]s, updated_at)
		VALUES ($1, TRUE, $2, NOW())
		ON CONFLICT (singleton) DO UPDATE
		SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()
		RETURNING `+schoolColumns, column)

	return scanSettings(q.QueryRow(ctx, query, id.String(), path))
}
