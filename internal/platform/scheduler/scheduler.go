package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Rebuilder regenerates the charts' series.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// Scheduler runs the periodic chart jobs.
type Scheduler struct {
	cron  *cron.Cron
	board Rebuilder
	ctx   context.Context
}

// New returns a scheduler whose specs include a seconds field.
func New(ctx context.Context, board Rebuilder) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		board: board,
		ctx:   ctx,
	}
}

// RegisterRebuild rebuilds every chart on spec, so the date axis rolls over.
func (s *Scheduler) RegisterRebuild(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunRebuildNow); err != nil {
		return fmt.Errorf("register rebuild task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// RunRebuildNow executes the rebuild task immediately.
func (s *Scheduler) RunRebuildNow() {
	slog.Info("rebuilding charts")
	if err := s.board.Rebuild(s.ctx); err != nil {
		slog.Error("chart rebuild failed", "error", err)
	}
}
