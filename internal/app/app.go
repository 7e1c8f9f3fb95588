package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"NewsSentinel/internal/config"
	"NewsSentinel/internal/infrastructure/feed"
	"NewsSentinel/internal/infrastructure/health"
	"NewsSentinel/internal/infrastructure/scheduler"
	"NewsSentinel/internal/infrastructure/scrape"
	"NewsSentinel/internal/infrastructure/storage"
	"NewsSentinel/internal/infrastructure/telegram"
	"NewsSentinel/internal/infrastructure/translate"
	"NewsSentinel/internal/logging"
	"NewsSentinel/internal/relevance"
	"NewsSentinel/internal/source"
	"NewsSentinel/internal/usecase"
)

const startupProbeTimeout = 10 * time.Second

// Application wires configuration to the pipeline, scheduler and liveness
// endpoint.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	runner *usecase.Runner
	health *health.Server
}

// New validates configuration and constructs every component. Any error here
// is startup fatal; nothing is partially started.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	filter, err := relevance.New(cfg.Relevance.Patterns)
	if err != nil {
		return nil, fmt.Errorf("relevance filter: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}

	store := storage.NewPostgresStore(db, baseLogger.With("component", "store"))

	probeCtx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()
	if err := store.Ping(probeCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seen store probe: %w", err)
	}
	if err := store.EnsureSchema(probeCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seen store schema: %w", err)
	}

	notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChannelIDs,
		baseLogger.With("component", "notifier"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("notifier: %w", err)
	}

	chain := translate.NewChain(
		baseLogger.With("component", "translator"),
		translate.NewGoogleClient(""),
		translate.NewMyMemoryClient(""),
	)

	registry := source.NewRegistry()
	registry.Register(feed.NewRSSSource(nil))
	registry.Register(scrape.NewPageSource(nil))
	registry.Register(scrape.NewMetaculusSource(nil))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:      registry,
		Sources:       cfg.Sources,
		Store:         store,
		Filter:        filter,
		Translator:    chain,
		Notifier:      notifier,
		TargetLang:    cfg.Pipeline.TargetLang,
		RecencyWindow: cfg.Pipeline.RecencyWindow(),
		PacingDelay:   cfg.Pipeline.PacingDelay(),
		Logger:        baseLogger.With("component", "pipeline"),
	})

	driver := scheduler.NewCronScheduler(cfg.Scheduler.Spec, cfg.Scheduler.Location())

	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		db:     db,
		runner: usecase.NewRunner(driver, pipeline),
		health: health.NewServer(cfg.Server.Port, baseLogger.With("component", "health")),
	}, nil
}

// Run starts the liveness endpoint and the poll schedule, then blocks until
// the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthErr := make(chan error, 1)
	go func() {
		healthErr <- a.health.Start(ctx)
	}()

	if err := a.runner.Start(ctx); err != nil {
		// The deferred cancel shuts the health server down.
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Warn("close seen store", "error", closeErr)
		}
		return fmt.Errorf("start scheduler: %w", err)
	}

	a.logger.Info("news sentinel running",
		"sources", len(a.cfg.Sources),
		"channels", len(a.cfg.Telegram.ChannelIDs),
		"schedule", a.cfg.Scheduler.Spec)

	select {
	case err := <-healthErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.runner.Stop(stopCtx); err != nil {
		a.logger.Warn("scheduler stop", "error", err)
	}

	if err := a.db.Close(); err != nil {
		a.logger.Warn("close seen store", "error", err)
	}

	return nil
}
