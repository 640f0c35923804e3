// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one named housekeeping task
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler owns the cron runner and the context jobs run under
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// New creates a scheduler. Jobs run in UTC.
func New(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Add registers a job. Failures are logged, not retried.
func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	if err := job.Run(s.ctx); err != nil {
		s.logger.Error("scheduled job failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	s.logger.Debug("scheduled job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
}

// Start begins running jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs and cancels their context
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
	s.logger.Info("scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
