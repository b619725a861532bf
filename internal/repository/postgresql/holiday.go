package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
)

const holidayColumns = `id, to_char(date, 'YYYY-MM-DD'), note, created_at`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func newHolidayID(h holiday.Holiday) (string, error) {
	if h.ID != "" {
		return h.ID, nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// Create implements holiday.HolidayRepository.
// A duplicate date surfaces as a unique_violation (23505) error.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newHolidayID(h)
	if err != nil {
		return holiday.Holiday{}, err
	}

	query := `
		INSERT INTO holidays (id, date, note, created_at)
		VALUES ($1, $2::date, $3, NOW())
		RETURNING ` + holidayColumns

	var created holiday.Holiday
	err = q.QueryRow(ctx, query, id, h.Date, h.Note).Scan(
		&created.ID,
		&created.Date,
		&created.Note,
		&created.CreatedAt,
	)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// CreateIfAbsent implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CreateIfAbsent(ctx context.Context, h holiday.Holiday) (bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newHolidayID(h)
	if err != nil {
		return false, err
	}

	commandTag, err := q.Exec(ctx, `
		INSERT INTO holidays (id, date, note, created_at)
		VALUES ($1, $2::date, $3, NOW())
		ON CONFLICT (date) DO NOTHING
	`, id, h.Date, h.Note)
	if err != nil {
		return false, fmt.Errorf("failed to insert holiday: %w", err)
	}
	return commandTag.RowsAffected() > 0, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays`
	args := []interface{}{}
	if filter.Year != 0 {
		query += ` WHERE date >= make_date($1, 1, 1) AND date < make_date($1 + 1, 1, 1)`
		args = append(args, filter.Year)
	}
	query += ` ORDER BY date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []holiday.Holiday{}
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Note, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return holidays, nil
}

// ListDates implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListDates(ctx context.Context, start, end string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD')
		FROM holidays
		WHERE date >= $1::date AND date < $2::date
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan holiday dates: %w", err)
	}
	return dates, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
