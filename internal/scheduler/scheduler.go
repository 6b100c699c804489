package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wordwhiz/vocabot/internal/quiz"
)

// Job is the cancellation handle for one repeating task. Stop is synchronous
// from the caller's perspective: future runs are prevented, an in-flight run
// is allowed to finish.
type Job struct {
	cancel context.CancelFunc
	once   sync.Once
}

// Stop cancels the job. Safe to call more than once.
func (j *Job) Stop() {
	j.once.Do(j.cancel)
}

// Scheduler runs callbacks on repeating timers, one goroutine per job.
type Scheduler struct {
	logger zerolog.Logger

	mu   sync.Mutex
	jobs map[*Job]struct{}
}

// New creates a scheduler.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With().Str("component", "scheduler").Logger(),
		jobs:   make(map[*Job]struct{}),
	}
}

// Repeat invokes fn immediately and then once per interval until the returned
// handle is stopped.
func (s *Scheduler) Repeat(interval time.Duration, fn func(ctx context.Context)) quiz.JobHandle {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{cancel: cancel}

	s.mu.Lock()
	s.jobs[job] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.jobs, job)
			s.mu.Unlock()
		}()

		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()

	return job
}

// StopAll cancels every running job, used during shutdown.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	for _, job := range jobs {
		job.Stop()
	}
	s.logger.Info().Int("jobs", len(jobs)).Msg("scheduler stopped")
}
