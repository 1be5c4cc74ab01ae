package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/service/integrity"
)

// Scheduler manages scheduled background tasks.
type Scheduler struct {
	cron     *cron.Cron
	checker  *integrity.Checker
	schedule string
	logger   *zap.Logger
}

// New creates a scheduler that runs the integrity sweep on the given cron
// schedule (standard 5-field cron expression).
func New(schedule string, checker *integrity.Checker, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		checker:  checker,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		s.logger.Error("failed to schedule integrity sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.checker.Sweep(ctx); err != nil {
		s.logger.Error("integrity sweep failed", zap.Error(err))
	}
}
