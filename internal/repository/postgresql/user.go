package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
)

const userColumns = `id, email, password_hash, name, nip, position, work_unit, org_unit, signature_path, email_verified_at, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.NIP,
		&u.Position,
		&u.WorkUnit,
		&u.OrgUnit,
		&u.SignaturePath,
		&u.EmailVerifiedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, fmt.Errorf("failed to generate id: %w", err)
		}
		newUser.ID = id.String()
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, nip, position, work_unit, org_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Name,
		newUser.NIP,
		newUser.Position,
		newUser.WorkUnit,
		newUser.OrgUnit,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $2, nip = $3, position = $4, work_unit = $5, org_unit = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(q.QueryRow(ctx, query, id, req.Name, req.NIP, req.Position, req.WorkUnit, req.OrgUnit))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateSignaturePath implements user.UserRepository.
func (r *userRepositoryImpl) UpdateSignaturePath(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET signature_path = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("failed to update signature: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// MarkEmailVerified implements user.UserRepository. Verifying twice keeps the first timestamp.
func (r *userRepositoryImpl) MarkEmailVerified(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET email_verified_at = COALESCE(email_verified_at, NOW()), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
