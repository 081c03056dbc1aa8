package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	adspendservice "leadops_backend/internal/adspend/service"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/notification"
	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

const dayFormat = "2006-01-02"

// Worker consumes the recurring tasks: the nightly ad-spend pull and the
// daily summary mail.
type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	spend      *adspendservice.Service
	leads      leadsrepo.Repository
	dispatcher *notification.Dispatcher
	loc        *time.Location
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, spend *adspendservice.Service, leads leadsrepo.Repository, dispatcher *notification.Dispatcher, loc *time.Location, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		spend:      spend,
		leads:      leads,
		dispatcher: dispatcher,
		loc:        loc,
		log:        log,
	}

	mux.HandleFunc(TaskAdSpendPull, w.handleAdSpendPull)
	mux.HandleFunc(TaskDailySummary, w.handleDailySummary)

	return w, nil
}

// previousDay resolves the default day for a recurring task: the reporting
// day before the current one.
func (w *Worker) previousDay() string {
	now := time.Now().In(w.loc)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc)
	return startOfToday.AddDate(0, 0, -1).Format(dayFormat)
}

func (w *Worker) handleAdSpendPull(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAdSpendPullPayload(task)
	if err != nil {
		return err
	}

	day := payload.Day
	if day == "" {
		day = w.previousDay()
	}

	return w.spend.PullDailySpend(ctx, day)
}

func (w *Worker) handleDailySummary(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDailySummaryPayload(task)
	if err != nil {
		return err
	}

	date := payload.Date
	if date == "" {
		date = w.previousDay()
	}

	dayStart, err := time.ParseInLocation(dayFormat, date, w.loc)
	if err != nil {
		return fmt.Errorf("daily summary: invalid date %q: %w", date, err)
	}

	leads, err := w.leads.CreatedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("daily summary: load leads: %w", err)
	}
	if len(leads) == 0 {
		w.log.Info("daily summary skipped, no leads", "date", date)
		return nil
	}

	return w.dispatcher.SendDailySummary(ctx, date, leads)
}

// Run blocks until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
