package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateSignaturePath(ctx context.Context, id string, path string) error
	MarkEmailVerified(ctx context.Context, id string) error
}
