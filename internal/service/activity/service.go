package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
)

type ActivityServiceImpl struct {
	db *database.DB
	activity.ActivityRepository
}

func NewActivityService(db *database.DB, activityRepository activity.ActivityRepository) activity.ActivityService {
	return &ActivityServiceImpl{
		db:                 db,
		ActivityRepository: activityRepository,
	}
}

// save writes a through write. Full-day rows are written inside a transaction
// holding the per-day lock so two concurrent requests cannot both pass the check.
func (s *ActivityServiceImpl) save(ctx context.Context, a activity.Activity, excludeID string, write func(context.Context, activity.Activity) (activity.Activity, error)) (activity.Activity, error) {
	if !a.FullDay {
		return write(ctx, a)
	}

	var saved activity.Activity
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		exists, err := s.ActivityRepository.ExistsFullDay(txCtx, a.UserID, a.Date, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return activity.ErrFullDayConflict
		}

		saved, err = write(txCtx, a)
		return err
	})
	if err != nil {
		return activity.Activity{}, err
	}
	return saved, nil
}

// Create implements activity.ActivityService.
func (s *ActivityServiceImpl) Create(ctx context.Context, req activity.CreateActivityRequest) (activity.ActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	newActivity := activity.Activity{
		UserID:      userID,
		Date:        req.Date,
		Category:    activity.Category(req.Category),
		Description: req.Description,
		Output:      req.Output,
		Volume:      req.VolumeOrDefault(),
		Unit:        req.Unit,
		FullDay:     req.FullDay,
	}

	created, err := s.save(ctx, newActivity, "", s.ActivityRepository.Create)
	if err != nil {
		return activity.ActivityResponse{}, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity.NewActivityResponse(created), nil
}

// GetByID implements activity.ActivityService.
func (s *ActivityServiceImpl) GetByID(ctx context.Context, id string) (activity.ActivityResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	a, err := s.ActivityRepository.GetByID(ctx, id, userID)
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	return activity.NewActivityResponse(a), nil
}

// List implements activity.ActivityService.
func (s *ActivityServiceImpl) List(ctx context.Context, filter activity.ActivityFilter) ([]activity.ActivityResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.ActivityRepository.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = activity.NewActivityResponse(a)
	}
	return responses, nil
}

// Update implements activity.ActivityService.
func (s *ActivityServiceImpl) Update(ctx context.Context, req activity.UpdateActivityRequest) (activity.ActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	existing, err := s.ActivityRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	existing.Date = req.Date
	existing.Category = activity.Category(req.Category)
	existing.Description = req.Description
	existing.Output = req.Output
	existing.Volume = req.VolumeOrDefault()
	existing.Unit = req.Unit
	existing.FullDay = req.FullDay

	updated, err := s.save(ctx, existing, existing.ID, s.ActivityRepository.Update)
	if err != nil {
		return activity.ActivityResponse{}, fmt.Errorf("failed to update activity: %w", err)
	}
	return activity.NewActivityResponse(updated), nil
}

// Delete implements activity.ActivityService.
func (s *ActivityServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.ActivityRepository.Delete(ctx, id, userID)
}
