package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/features/recommendations"
	"github.com/xyz-asif/spire/internal/pkg/logger"
)

// Job is a task repeated every Interval. A job never overlaps itself.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs jobs on their own tickers until stopped
type Scheduler struct {
	jobs []Job
	log  zerolog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs: jobs,
		log:  logger.Component("scheduler"),
	}
}

// Batch is the part of recommendations.Service the scheduler drives
type Batch interface {
	GenerateForAllUsers(ctx context.Context, workers, limit int) (recommendations.BatchResult, error)
	RefreshAllPreferences(ctx context.Context, workers int) (recommendations.BatchResult, error)
}

// FromConfig builds the generation and preference refresh jobs
func FromConfig(cfg *config.Config, batch Batch) *Scheduler {
	return New(
		Job{
			Name:     "generate-recommendations",
			Interval: cfg.GenerationInterval,
			Run: func(ctx context.Context) error {
				_, err := batch.GenerateForAllUsers(ctx, cfg.BatchWorkers, cfg.RecommendationLimit)
				return err
			},
		},
		Job{
			Name:     "refresh-preferences",
			Interval: cfg.PreferenceRefreshInterval,
			Run: func(ctx context.Context) error {
				_, err := batch.RefreshAllPreferences(ctx, cfg.BatchWorkers)
				return err
			},
		},
	)
}

// Start launches one loop per job. The loops end when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler already running")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	for _, job := range s.jobs {
		if job.Interval <= 0 || job.Run == nil {
			s.log.Warn().Str("job", job.Name).Msg("job skipped: no interval")
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
		s.log.Info().Str("job", job.Name).Dur("interval", job.Interval).Msg("job scheduled")
	}
	return nil
}

// Stop cancels every loop and waits for running jobs to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("job", job.Name).Interface("panic", r).Msg("job panicked")
		}
	}()

	if err := job.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error().Err(err).Str("job", job.Name).Msg("job failed")
		return
	}
	s.log.Debug().Str("job", job.Name).Dur("took", time.Since(start)).Msg("job finished")
}
