// Package scheduler runs periodic background jobs alongside the API server.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/taskplanner/core/internal/infrastructure/logger"
)

// Job is a named function executed on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Scheduler runs registered jobs until stopped.
type Scheduler struct {
	logger *logger.Logger
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler.
func New(logger *logger.Logger) *Scheduler {
	return &Scheduler{logger: logger.WithComponent("scheduler")}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start launches one goroutine per job.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	s.logger.Infow("Scheduler started", "jobs", len(s.jobs))
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logger.Debugw("Running job", "job", job.Name)
			job.Run(ctx)
		}
	}
}

// Stop cancels all jobs and waits for them to exit.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

// HeartbeatJob logs a liveness line once per minute.
func HeartbeatJob(log *logger.Logger) Job {
	return Job{
		Name:     "minute_heartbeat",
		Interval: time.Minute,
		Run: func(ctx context.Context) {
			log.Infow("Scheduler heartbeat", "at", time.Now().Format(time.RFC3339))
		},
	}
}
