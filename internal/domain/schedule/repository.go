package schedule

import "context"

type ScheduleRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id, userID string) (Entry, error)
	// ListByUser returns every entry of the user ordered by weekday, then creation
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	Update(ctx context.Context, e Entry) (Entry, error)
	Delete(ctx context.Context, id, userID string) error
}
