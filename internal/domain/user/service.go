package user

import (
	"context"
	"io"
)

type ProfileService interface {
	GetProfile(ctx context.Context) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	UploadSignature(ctx context.Context, file io.Reader, filename string) (ProfileResponse, error)
}
