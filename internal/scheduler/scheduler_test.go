package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/features/recommendations"
)

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := New(Job{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_StartTwice(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()
	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_ContextCancelEndsLoops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(Job{Name: "idle", Interval: time.Hour, Run: func(context.Context) error { return nil }})
	require.NoError(t, s.Start(ctx))

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_SurvivesFailingAndPanickingJobs(t *testing.T) {
	var failing, panicking atomic.Int32
	s := New(
		Job{Name: "fail", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			failing.Add(1)
			return errors.New("boom")
		}},
		Job{Name: "panic", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			panicking.Add(1)
			panic("boom")
		}},
	)

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return failing.Load() >= 2 && panicking.Load() >= 2
	}, time.Second, time.Millisecond)
	s.Stop()
}

type fakeBatch struct {
	generated atomic.Int32
	refreshed atomic.Int32
	workers   atomic.Int32
}

func (b *fakeBatch) GenerateForAllUsers(_ context.Context, workers, _ int) (recommendations.BatchResult, error) {
	b.generated.Add(1)
	b.workers.Store(int32(workers))
	return recommendations.BatchResult{}, nil
}

func (b *fakeBatch) RefreshAllPreferences(context.Context, int) (recommendations.BatchResult, error) {
	b.refreshed.Add(1)
	return recommendations.BatchResult{}, nil
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		BatchWorkers:              3,
		RecommendationLimit:       20,
		GenerationInterval:        5 * time.Millisecond,
		PreferenceRefreshInterval: 5 * time.Millisecond,
	}
	batch := &fakeBatch{}
	s := FromConfig(cfg, batch)

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return batch.generated.Load() > 0 && batch.refreshed.Load() > 0
	}, time.Second, time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(3), batch.workers.Load())
}
