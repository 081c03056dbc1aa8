package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/internal/adspend"
	"leadops_backend/internal/analytics"
	"leadops_backend/internal/audit"
	"leadops_backend/internal/directory"
	"leadops_backend/internal/email"
	"leadops_backend/internal/enrichment"
	"leadops_backend/internal/events"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/internal/http/router"
	"leadops_backend/internal/leads"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/notification"
	"leadops_backend/internal/scheduler"
	"leadops_backend/internal/settlement"
	"leadops_backend/platform/config"
	"leadops_backend/platform/db"
	"leadops_backend/platform/geo"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	resolver, err := geo.NewResolver(cfg.GetGeoIPDatabasePath())
	if err != nil {
		log.Warn("geoip database unavailable, city lookups disabled", "error", err)
		resolver, _ = geo.NewResolver("")
	}
	defer func() { _ = resolver.Close() }()

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	directoryModule := directory.NewModule(pool, val, log)

	// Notification dispatcher subscribes to domain events (not HTTP-facing)
	dispatcher := notification.NewDispatcher(directoryModule.Service(), sender, log)
	dispatcher.SubscribeToBus(eventBus)

	// The audit module denormalizes subject leads through the same repository
	// instance the leads module mutates.
	leadsRepo := leadsrepo.New(pool)
	auditModule := audit.NewModule(pool, leadsRepo, log)
	leadsModule := leads.NewModule(leadsRepo, val, log, auditModule.Service(), resolver, eventBus)

	if closeEnricher := initEnricher(ctx, cfg, leadsRepo, eventBus, log); closeEnricher != nil {
		defer closeEnricher()
	}

	if len(cfg.GetCredentialsKey()) == 0 {
		log.Warn("CREDENTIALS_KEY not configured; ad provider credentials cannot be stored")
	}
	adspendModule := adspend.NewModule(pool, val, log, cfg.GetCredentialsKey())
	if spendScheduler, closeScheduler := initSpendScheduler(cfg, log); spendScheduler != nil {
		defer closeScheduler()
		adspendModule.SetSpendPullScheduler(spendScheduler)
	}
	settlementModule := settlement.NewModule(pool, leadsRepo, val, cfg.GetReportingLocation(), log)
	analyticsModule := analytics.NewModule(
		leadsRepo,
		adspendModule.Repository(),
		settlementModule.Repository(),
		cfg.GetReportingLocation(),
		cfg.GetTrendDays(),
		log,
	)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:      cfg,
		Logger:      log,
		Health:      db.NewPoolAdapter(pool),
		RequireRole: directoryModule.Gate().RequireRole,
		Modules: []apphttp.Module{
			directoryModule,
			leadsModule,
			auditModule,
			adspendModule,
			settlementModule,
			analyticsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initEnricher(ctx context.Context, cfg config.GA4Config, leadsRepo leadsrepo.Repository, bus events.Bus, log *logger.Logger) func() {
	if cfg.GetBigQueryProjectID() == "" {
		log.Info("BIGQUERY_PROJECT_ID not configured; attribution enrichment disabled")
		return nil
	}

	source, err := enrichment.NewBigQuerySource(ctx, cfg.GetBigQueryProjectID(), cfg.GetGA4Dataset())
	if err != nil {
		log.Error("failed to initialize attribution enrichment", "error", err)
		return nil
	}

	enrichment.NewEnricher(source, leadsRepo, log).SubscribeToBus(bus)
	return func() {
		_ = source.Close()
	}
}

func initSpendScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; manual spend pulls disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize spend pull scheduler", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
