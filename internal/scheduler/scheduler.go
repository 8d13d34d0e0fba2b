// Package scheduler runs the periodic refresh and cache maintenance
// jobs in watch mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fareadvisor/internal/advisor"
	"fareadvisor/internal/cache"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Advisor *advisor.Advisor
	Cache   *cache.Cache
	Ctx     context.Context

	logger *zap.Logger
	report func(string)
}

// Rider captures the inputs of the recurring comparison.
type Rider struct {
	TripsPerWeek  float64
	Zone          string
	CustomerGroup int
	Municipality  string
}

// New creates a scheduler. The report callback receives every
// rendered comparison; it is how watch mode reaches the terminal.
func New(ctx context.Context, adv *advisor.Advisor, c *cache.Cache, logger *zap.Logger, report func(string)) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Advisor: adv,
		Cache:   c,
		Ctx:     ctx,
		logger:  logger,
		report:  report,
	}
}

// RegisterAll registers the refresh and cleanup tasks.
func (s *Scheduler) RegisterAll(refreshCron, cleanupCron string, rider Rider) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.refreshTask(rider) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(cleanupCron, s.cleanupTask); err != nil {
		return fmt.Errorf("register cleanup task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately, for the first
// report on startup.
func (s *Scheduler) RunRefreshNow(rider Rider) {
	s.refreshTask(rider)
}

func (s *Scheduler) refreshTask(rider Rider) {
	s.logger.Info("running refresh task", zap.String("zone", rider.Zone))
	cmp, err := s.Advisor.Compare(s.Ctx, rider.TripsPerWeek, rider.Zone, rider.CustomerGroup, rider.Municipality)
	if err != nil {
		s.logger.Error("refresh failed", zap.Error(err))
		s.report(advisor.UserMessage(err))
		return
	}

	out := advisor.FormatComparison(cmp)
	out += "\n" + advisor.FormatCacheStats(s.Cache.GetStats())
	s.report(out)
}

func (s *Scheduler) cleanupTask() {
	s.logger.Info("running cache cleanup")
	removed := s.Cache.Cleanup()
	stats := s.Cache.GetStats()
	s.logger.Info("cache maintenance finished",
		zap.Int("removed", removed),
		zap.Int("remaining", stats.TotalItems),
		zap.Int64("size_bytes", stats.TotalSizeBytes))
}
