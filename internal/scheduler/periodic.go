package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

// Cron entries fire in the reporting timezone so "yesterday" is resolved
// the same way the reports bucket it. The spend pull runs before the
// summary so the summary day already has its costs.
const (
	cronAdSpendPull  = "0 4 * * *"
	cronDailySummary = "0 5 * * *"
)

// Periodic registers the recurring tasks with Redis and keeps their
// schedule alive.
type Periodic struct {
	scheduler *asynq.Scheduler
	queue     string
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, loc *time.Location, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: loc})

	return &Periodic{scheduler: scheduler, queue: queue, log: log}, nil
}

// Register enrolls the recurring tasks. Empty payloads make each run
// resolve its own "previous day".
func (p *Periodic) Register() error {
	pullTask, err := NewAdSpendPullTask(AdSpendPullPayload{})
	if err != nil {
		return err
	}
	if _, err := p.scheduler.Register(cronAdSpendPull, pullTask, asynq.Queue(p.queue)); err != nil {
		return fmt.Errorf("register ad spend pull: %w", err)
	}

	summaryTask, err := NewDailySummaryTask(DailySummaryPayload{})
	if err != nil {
		return err
	}
	if _, err := p.scheduler.Register(cronDailySummary, summaryTask, asynq.Queue(p.queue)); err != nil {
		return fmt.Errorf("register daily summary: %w", err)
	}

	return nil
}

// Run blocks until ctx is canceled.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
