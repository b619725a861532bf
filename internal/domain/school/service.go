package school

import (
	"context"
	"io"
)

type SchoolService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Upsert(ctx context.Context, req UpsertSettingsRequest) (SettingsResponse, error)
	UploadPrincipalSignature(ctx context.Context, file io.Reader, filename string) (SettingsResponse, error)
	UploadStamp(ctx context.Context, file io.Reader, filename string) (SettingsResponse, error)
}
