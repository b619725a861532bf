package school

import "context"

type SchoolRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, req UpsertSettingsRequest) (Settings, error)
	UpdatePrincipalSignaturePath(ctx context.Context, path string) (Settings, error)
	UpdateStampPath(ctx context.Context, path string) (Settings, error)
}
