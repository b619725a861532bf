package activity

import "context"

type ActivityRepository interface {
	Create(ctx context.Context, a Activity) (Activity, error)
	GetByID(ctx context.Context, id, userID string) (Activity, error)
	List(ctx context.Context, userID string, filter ActivityFilter) ([]Activity, error)
	// ListByDateRange returns activities with start <= date < end, ordered by date
	ListByDateRange(ctx context.Context, userID, start, end string) ([]Activity, error)
	Update(ctx context.Context, a Activity) (Activity, error)
	Delete(ctx context.Context, id, userID string) error
	ExistsFullDay(ctx context.Context, userID, date, excludeID string) (bool, error)
}
