package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
)

type oneTimeTokenRepositoryImpl struct {
	db *database.DB
}

// NewOneTimeTokenRepository creates the store for password reset and email verification tokens.
func NewOneTimeTokenRepository(db *database.DB) auth.OneTimeTokenRepository {
	return &oneTimeTokenRepositoryImpl{db: db}
}

func (r *oneTimeTokenRepositoryImpl) Create(ctx context.Context, userID string, purpose auth.TokenPurpose, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	// only the newest link of a kind stays usable
	query := `
		WITH retired AS (
			UPDATE one_time_tokens
			SET used_at = NOW()
			WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL
		)
		INSERT INTO one_time_tokens (user_id, purpose, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := q.Exec(ctx, query, userID, string(purpose), hashToken(token), expiresAt.UTC()); err != nil {
		return fmt.Errorf("failed to store %s token: %w", purpose, err)
	}
	return nil
}

func (r *oneTimeTokenRepositoryImpl) Consume(ctx context.Context, purpose auth.TokenPurpose, token string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE one_time_tokens
		SET used_at = NOW()
		WHERE token_hash = $1 AND purpose = $2 AND used_at IS NULL AND expires_at > NOW()
		RETURNING user_id::text
	`

	var userID string
	err := q.QueryRow(ctx, query, hashToken(token), string(purpose)).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", auth.ErrInvalidLinkToken
		}
		return "", fmt.Errorf("failed to consume %s token: %w", purpose, err)
	}
	return userID, nil
}

func (r *oneTimeTokenRepositoryImpl) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM one_time_tokens
		WHERE expires_at < $1 OR used_at < $1
	`
	tag, err := q.Exec(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale one-time tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
