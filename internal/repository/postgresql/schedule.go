package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const scheduleColumns = `id, user_id, weekday, category, description, output, volume, unit, created_at, updated_at`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanScheduleEntry(row pgx.Row) (schedule.Entry, error) {
	var e schedule.Entry
	var volume decimal.NullDecimal
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Weekday,
		&e.Category,
		&e.Description,
		&e.Output,
		&volume,
		&e.Unit,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return schedule.Entry{}, err
	}
	e.Volume = volume.Decimal
	return e, nil
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, e schedule.Entry) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return schedule.Entry{}, fmt.Errorf("failed to generate id: %w", err)
		}
		e.ID = id.String()
	}

	query := `
		INSERT INTO schedules (id, user_id, weekday, category, description, output, volume, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, NOW(), NOW())
		RETURNING ` + scheduleColumns

	created, err := scanScheduleEntry(q.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.Weekday,
		e.Category,
		e.Description,
		e.Output,
		e.Volume,
		e.Unit,
	))
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id, userID string) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1 AND user_id = $2`

	e, err := scanScheduleEntry(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Entry{}, schedule.ErrScheduleNotFound
		}
		return schedule.Entry{}, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return e, nil
}

// ListByUser implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE user_id = $1
		ORDER BY weekday ASC, created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	defer rows.Close()

	entries := []schedule.Entry{}
	for rows.Next() {
		e, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, e schedule.Entry) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET weekday = $3, category = $4, description = $5, output = $6,
		    volume = $7::numeric, unit = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + scheduleColumns

	updated, err := scanScheduleEntry(q.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.Weekday,
		e.Category,
		e.Description,
		e.Output,
		e.Volume,
		e.Unit,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Entry{}, schedule.ErrScheduleNotFound
		}
		return schedule.Entry{}, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return updated, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
