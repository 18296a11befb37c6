// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"cinema-pos/internal/usecase"
	"cinema-pos/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	jobPurgeTokens = "purge-expired-tokens"
	jobStockAudit  = "negative-stock-audit"

	jobTimeout = time.Minute
)

type Scheduler struct {
	cron        gocron.Scheduler
	maintenance usecase.MaintenanceService
	log         *zap.Logger
}

// New registers the token purge (daily at 03:00) and the stock audit
// (every config.StockAuditInterval). Jobs start with Start.
func New(maintenance usecase.MaintenanceService, config utils.SchedulerConfig, log *zap.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone %q: %w", config.Timezone, err)
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{
		cron:        cron,
		maintenance: maintenance,
		log:         log.With(zap.String("component", "scheduler")),
	}

	_, err = cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(s.purgeTokens),
		gocron.WithName(jobPurgeTokens),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", jobPurgeTokens, err)
	}

	_, err = cron.NewJob(
		gocron.DurationJob(config.StockAuditInterval),
		gocron.NewTask(s.auditStock),
		gocron.WithName(jobStockAudit),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", jobStockAudit, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started", zap.Int("jobs", len(s.cron.Jobs())))
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}

func (s *Scheduler) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	purged, err := s.maintenance.PurgeExpiredTokens(ctx)
	if err != nil {
		s.log.Error("Token purge failed", zap.String("job", jobPurgeTokens), zap.Error(err))
		return
	}
	s.log.Info("Expired tokens purged", zap.String("job", jobPurgeTokens), zap.Int64("purged", purged))
}

func (s *Scheduler) auditStock() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	found, err := s.maintenance.AuditNegativeStock(ctx)
	if err != nil {
		s.log.Error("Stock audit failed", zap.String("job", jobStockAudit), zap.Error(err))
		return
	}
	if found > 0 {
		s.log.Warn("Stock audit found oversold snacks", zap.String("job", jobStockAudit), zap.Int("snacks", found))
	}
}
