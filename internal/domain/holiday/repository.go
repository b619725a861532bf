package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// CreateIfAbsent inserts h unless its date already exists and reports whether it did
	CreateIfAbsent(ctx context.Context, h Holiday) (bool, error)
	List(ctx context.Context, filter HolidayFilter) ([]Holiday, error)
	// ListDates returns the holiday dates with start <= date < end
	ListDates(ctx context.Context, start, end string) ([]string, error)
	Delete(ctx context.Context, id string) error
}
