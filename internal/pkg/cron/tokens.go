package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
)

// TokenJobs prunes refresh and email link tokens that can no longer be used
type TokenJobs struct {
	refreshTokenRepo auth.RefreshTokenRepository
	linkTokenRepo    auth.OneTimeTokenRepository
	retention        time.Duration
	now              func() time.Time
}

// NewTokenJobs keeps dead tokens for retention before deleting them
func NewTokenJobs(refreshTokenRepo auth.RefreshTokenRepository, linkTokenRepo auth.OneTimeTokenRepository, retention time.Duration) *TokenJobs {
	return &TokenJobs{
		refreshTokenRepo: refreshTokenRepo,
		linkTokenRepo:    linkTokenRepo,
		retention:        retention,
		now:              time.Now,
	}
}

// RegisterJobs registers the token cleanup jobs
func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"prune_refresh_tokens",
		6*time.Hour,
		j.PruneRefreshTokens,
	)
	scheduler.AddJob(
		"prune_link_tokens",
		6*time.Hour,
		j.PruneLinkTokens,
	)
}

// PruneRefreshTokens deletes tokens expired or revoked longer than the retention ago
func (j *TokenJobs) PruneRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokenRepo.DeleteStale(ctx, j.now().Add(-j.retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Pruned refresh tokens", "deleted", deleted)
	}
	return nil
}

// PruneLinkTokens deletes password reset and verification tokens expired or used longer than the retention ago
func (j *TokenJobs) PruneLinkTokens(ctx context.Context) error {
	deleted, err := j.linkTokenRepo.DeleteStale(ctx, j.now().Add(-j.retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Pruned link tokens", "deleted", deleted)
	}
	return nil
}
