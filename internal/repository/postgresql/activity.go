package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/calendar"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const activityColumns = `id, user_id, to_char(date, 'YYYY-MM-DD'), category, description, output, volume, unit, full_day, created_at, updated_at`

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func scanActivity(row pgx.Row) (activity.Activity, error) {
	var a activity.Activity
	var volume decimal.NullDecimal
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.Category,
		&a.Description,
		&a.Output,
		&volume,
		&a.Unit,
		&a.FullDay,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return activity.Activity{}, err
	}
	// NULL volume counts as zero
	a.Volume = volume.Decimal
	return a, nil
}

func collectActivities(rows pgx.Rows) ([]activity.Activity, error) {
	defer rows.Close()

	activities := []activity.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return activities, nil
}

// Create implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Create(ctx context.Context, a activity.Activity) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return activity.Activity{}, fmt.Errorf("failed to generate id: %w", err)
		}
		a.ID = id.String()
	}

	query := `
		INSERT INTO activities (id, user_id, date, category, description, output, volume, unit, full_day, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7::numeric, $8, $9, NOW(), NOW())
		RETURNING ` + activityColumns

	created, err := scanActivity(q.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.Date,
		a.Category,
		a.Description,
		a.Output,
		a.Volume,
		a.Unit,
		a.FullDay,
	))
	if err != nil {
		return activity.Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}
	return created, nil
}

// GetByID implements activity.ActivityRepository.
func (r *activityRepositoryImpl) GetByID(ctx context.Context, id, userID string) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1 AND user_id = $2`

	a, err := scanActivity(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		return activity.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// List implements activity.ActivityRepository.
func (r *activityRepositoryImpl) List(ctx context.Context, userID string, filter activity.ActivityFilter) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	args := []interface{}{userID}
	conditions = append(conditions, "user_id = $1")

	if filter.Month != 0 && filter.Year != 0 {
		start, end := calendar.MonthRange(filter.Year, time.Month(filter.Month), time.UTC)
		args = append(args, calendar.DateKey(start), calendar.DateKey(end))
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date AND date < $%d::date", len(args)-1, len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(description ILIKE $%d OR output ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + activityColumns + ` FROM activities WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY date DESC, created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return collectActivities(rows)
}

// ListByDateRange implements activity.ActivityRepository.
func (r *activityRepositoryImpl) ListByDateRange(ctx context.Context, userID, start, end string) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE user_id = $1 AND date >= $2::date AND date < $3::date
		ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities by date range: %w", err)
	}
	return collectActivities(rows)
}

// Update implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Update(ctx context.Context, a activity.Activity) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activities
		SET date = $3::date, category = $4, description = $5, output = $6,
		    volume = $7::numeric, unit = $8, full_day = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + activityColumns

	updated, err := scanActivity(q.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.Date,
		a.Category,
		a.Description,
		a.Output,
		a.Volume,
		a.Unit,
		a.FullDay,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		return activity.Activity{}, fmt.Errorf("failed to update activity: %w", err)
	}
	return updated, nil
}

// Delete implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Delete(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return activity.ErrActivityNotFound
	}
	return nil
}

// ExistsFullDay implements activity.ActivityRepository.
// Inside a transaction it also takes a lock on (user, date) that is held until
// commit, so concurrent writers check and insert one at a time.
func (r *activityRepositoryImpl) ExistsFullDay(ctx context.Context, userID, date, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`, userID, date); err != nil {
		return false, fmt.Errorf("failed to lock activity date: %w", err)
	}

	query := `
		SELECT EXISTS(
			SELECT 1 FROM activities
			WHERE user_id = $1 AND date = $2::date AND full_day AND ($3 = '' OR id::text <> $3)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check full-day activity: %w", err)
	}
	return exists, nil
}
