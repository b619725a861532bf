package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobOnStart(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	started := make(chan struct{}, 1)
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			started <- struct{}{}
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "fails")
		return errors.New("boom")
	})
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "succeeds")
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"fails", "succeeds"}, ran)
}

type fakeTokenStore struct {
	auth.RefreshTokenRepository
	before time.Time
	err    error
}

func (f *fakeTokenStore) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	f.before = before
	return 3, f.err
}

type fakeLinkTokenStore struct {
	auth.OneTimeTokenRepository
	before time.Time
}

func (f *fakeLinkTokenStore) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	f.before = before
	return 1, nil
}

func TestTokenJobs_PruneRefreshTokens(t *testing.T) {
	store := &fakeTokenStore{}
	jobs := NewTokenJobs(store, &fakeLinkTokenStore{}, 24*time.Hour)
	now := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.PruneRefreshTokens(context.Background()))
	assert.Equal(t, now.Add(-24*time.Hour), store.before)

	store.err = errors.New("db down")
	assert.Error(t, jobs.PruneRefreshTokens(context.Background()))
}

func TestTokenJobs_PruneLinkTokens(t *testing.T) {
	links := &fakeLinkTokenStore{}
	jobs := NewTokenJobs(&fakeTokenStore{}, links, 24*time.Hour)
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.PruneLinkTokens(context.Background()))
	assert.Equal(t, now.Add(-24*time.Hour), links.before)
}

func TestTokenJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler()
	NewTokenJobs(&fakeTokenStore{}, &fakeLinkTokenStore{}, time.Hour).RegisterJobs(s)

	require.Len(t, s.jobs, 2)
	assert.Equal(t, "prune_refresh_tokens", s.jobs[0].Name)
	assert.Equal(t, "prune_link_tokens", s.jobs[1].Name)
}
