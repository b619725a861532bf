package schedule

import "context"

type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	List(ctx context.Context) ([]ScheduleResponse, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}
