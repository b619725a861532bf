package schedule

import (
	"context"
	"fmt"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
)

type scheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// Create implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	created, err := s.scheduleRepo.Create(ctx, schedule.Entry{
		UserID:      userID,
		Weekday:     req.Weekday,
		Category:    activity.Category(req.Category),
		Description: req.Description,
		Output:      req.Output,
		Volume:      req.VolumeOrDefault(),
		Unit:        req.Unit,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return schedule.NewScheduleResponse(created), nil
}

// List implements schedule.ScheduleService.
func (s *scheduleServiceImpl) List(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ScheduleResponse, len(entries))
	for i, e := range entries {
		responses[i] = schedule.NewScheduleResponse(e)
	}
	return responses, nil
}

// Update implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	existing, err := s.scheduleRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	existing.Weekday = req.Weekday
	existing.Category = activity.Category(req.Category)
	existing.Description = req.Description
	existing.Output = req.Output
	existing.Volume = req.VolumeOrDefault()
	existing.Unit = req.Unit

	updated, err := s.scheduleRepo.Update(ctx, existing)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return schedule.NewScheduleResponse(updated), nil
}

// Delete implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.scheduleRepo.Delete(ctx, id, userID)
}
