package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"NewsSift/internal/balance"
	"NewsSift/internal/classify"
	"NewsSift/internal/config"
	"NewsSift/internal/feed"
	"NewsSift/internal/infrastructure/httpapi"
	"NewsSift/internal/infrastructure/scheduler"
	"NewsSift/internal/infrastructure/storage"
	"NewsSift/internal/infrastructure/summarizer"
	"NewsSift/internal/infrastructure/telegram"
	"NewsSift/internal/logging"
	"NewsSift/internal/ports"
	"NewsSift/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	server    *httpapi.Server
	scheduled *usecase.ScheduledIngestion
}

// New builds a runnable application instance. It fails fast only on
// conditions nothing downstream can recover from.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repo := storage.NewPostgresRepository(pool)

	httpClient := &http.Client{Timeout: cfg.Scraper.FetchTimeout()}
	fetcher := feed.NewFetcher(httpClient, cfg.Scraper.UserAgent, cfg.Scraper.FetchTimeout(),
		baseLogger.With("component", "fetcher"))
	parser := feed.NewParser(baseLogger.With("component", "parser"))
	prober := feed.NewOGImageProber(httpClient, cfg.Scraper.ProbeTimeout(),
		baseLogger.With("component", "prober"))

	var summaryClient ports.Summarizer
	if cfg.Summarizer.Endpoint != "" {
		summaryClient = summarizer.NewClient(cfg.Summarizer)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:    repo,
		Articles:   repo,
		Stats:      repo,
		Fetcher:    fetcher,
		Parser:     parser,
		Prober:     prober,
		Summarizer: summaryClient,
		Notifier:   notifier,
		Classifier: classify.New(cfg.Categories),
		Resolver:   classify.NewSourceResolver(cfg.SourceHints),
		Balancer:   balance.New(cfg.Categories, cfg.Balancer),
		Settings: usecase.Settings{
			Concurrency:          cfg.Scraper.Concurrency,
			BaseQuota:            cfg.Scraper.BaseQuota,
			MaxArticlesPerSource: cfg.Scraper.MaxArticlesPerSource,
			MaxContentLength:     cfg.Scraper.MaxContentLength,
			DistributionWindow:   24 * time.Hour,
			ProbeImages:          cfg.Scraper.ProbeImages,
		},
		Logger: baseLogger.With("component", "pipeline"),
	})

	scheduled := usecase.NewScheduledIngestion(pipeline,
		scheduler.NewIntervalScheduler(cfg.Scheduler.Interval()),
		baseLogger.With("component", "scheduler"))

	server := httpapi.NewServer(pipeline, cfg.Server.ServiceToken,
		baseLogger.With("component", "http"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pool:      pool,
		server:    server,
		scheduled: scheduled,
	}, nil
}

// Run starts the scheduler and serves HTTP until the context is
// cancelled, then shuts both down.
func (a *Application) Run(ctx context.Context) error {
	if err := a.scheduled.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(a.cfg.Server.Addr)
	}()

	a.logger.Info("application started", "addr", a.cfg.Server.Addr,
		"cycleInterval", a.cfg.Scheduler.Interval())

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.scheduled.Stop(shutdownCtx); err != nil {
		a.logger.Warn("stop scheduler", "error", err)
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("shutdown http server", "error", err)
	}
	a.pool.Close()

	a.logger.Info("application stopped")
	return nil
}
