package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"paper_digest/internal/config"
	"paper_digest/internal/notifier"
	"paper_digest/internal/scheduler"
	"paper_digest/internal/service"
	"paper_digest/internal/source/arxiv"
	"paper_digest/internal/source/rss"
	"paper_digest/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single batch for the current minute and exit")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize digest delivery queue
	rabbitMQ, err := notifier.NewRabbitMQ(notifier.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Initialize stores
	subscriberStore := postgres.NewSubscriberStore(db)
	sentPaperStore := postgres.NewSentPaperStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Initialize source clients
	rssClient := rss.New(rss.Config{
		Timeout:   cfg.RSS.Timeout,
		UserAgent: cfg.RSS.UserAgent,
	}, logger)

	arxivClient := arxiv.New(arxiv.Config{
		BaseURL:        cfg.Arxiv.BaseURL,
		MaxResults:     cfg.Arxiv.MaxResults,
		LookbackDays:   cfg.Arxiv.LookbackDays,
		Timeout:        cfg.Arxiv.Timeout,
		MaxAttempts:    cfg.Arxiv.Retry.MaxAttempts,
		InitialBackoff: cfg.Arxiv.Retry.InitialBackoff,
		MaxBackoff:     cfg.Arxiv.Retry.MaxBackoff,
	}, logger)

	collector := service.NewCollector(
		subscriberStore,
		sentPaperStore,
		rssClient,
		arxivClient,
		txManager,
		rabbitMQ,
		logger,
		cfg.Collect,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *once {
		runCtx, cancelRun := context.WithTimeout(ctx, cfg.Collect.RunTimeout)
		defer cancelRun()

		stats, err := collector.CollectAll(runCtx, time.Now())
		if err != nil {
			logger.Error("batch collection failed", "error", err)
			os.Exit(1)
		}
		if len(stats.Errors) > 0 {
			os.Exit(1)
		}
		return
	}

	logger.Info("starting paper digest collector",
		"max_concurrent_fetches", cfg.Collect.MaxConcurrentFetches,
		"recent_limit", cfg.Collect.RecentLimit,
	)

	sched := scheduler.NewScheduler(collector, cfg.Collect.RunTimeout, logger)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
