package activity

import "context"

type ActivityService interface {
	Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error)
	GetByID(ctx context.Context, id string) (ActivityResponse, error)
	List(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, error)
	Update(ctx context.Context, req UpdateActivityRequest) (ActivityResponse, error)
	Delete(ctx context.Context, id string) error
}
