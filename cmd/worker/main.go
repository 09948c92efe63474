package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubedigest/internal/config"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/metrics"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/postgres"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/queue"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/storage"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/youtube"
	"github.com/hszk-dev/tubedigest/internal/scheduler"
	"github.com/hszk-dev/tubedigest/internal/summarizer"
	"github.com/hszk-dev/tubedigest/internal/transcript"
	"github.com/hszk-dev/tubedigest/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	if err := pgClient.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create YouTube client: %w", err)
	}

	scraper := transcript.NewScraper(transcript.DefaultScraperConfig())
	summarizerClient := summarizer.NewOpenAI(summarizer.OpenAIConfig{
		APIKey: cfg.OpenAI.APIKey,
		Model:  cfg.OpenAI.Model,
	})

	channelRepo := postgres.NewChannelRepository(pgClient.Pool())
	videoRepo := postgres.NewVideoRepository(pgClient.Pool())
	pendingRepo := postgres.NewPendingVideoRepository(pgClient.Pool())
	gate := cache.NewRedisGate(redisClient)

	ingestSvc := usecase.NewIngestService(
		channelRepo,
		videoRepo,
		pendingRepo,
		ytClient,
		scraper,
		summarizerClient,
		storageClient,
		usecase.IngestServiceConfig{
			DefaultCategory: cfg.Ingest.DefaultCategory,
			Lookback:        cfg.Ingest.Lookback,
			CallTimeout:     cfg.Ingest.CallTimeout,
		},
	)
	submissionSvc := usecase.NewSubmissionService(
		channelRepo,
		videoRepo,
		ytClient,
		scraper,
		summarizerClient,
		storageClient,
		cache.NewRedisJobStore(redisClient, cfg.Ingest.SubmissionJobTTL),
		queueClient,
		usecase.SubmissionServiceConfig{CallTimeout: cfg.Ingest.CallTimeout},
	)

	sched := scheduler.New(ingestSvc, gate, scheduler.Config{
		Spec:         cfg.Ingest.CronSpec,
		RunOnStartup: cfg.Ingest.RunOnStartup,
		Category:     cfg.Ingest.DefaultCategory,
	})
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	go func() {
		logger.Info("consuming ingestion triggers")
		err := queueClient.ConsumeIngestTasks(ctx, func(task repository.IngestTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("manual ingestion triggered", slog.String("category", task.Category))
			if err := ingestSvc.Run(ctx, task.Category); err != nil {
				metrics.IngestRunsTotal.WithLabelValues(metrics.TriggerManual, metrics.StatusError).Inc()
				return err
			}
			metrics.IngestRunsTotal.WithLabelValues(metrics.TriggerManual, metrics.StatusSuccess).Inc()
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("ingest consumer error: %w", err)
		}
	}()

	go func() {
		logger.Info("consuming video submissions")
		err := queueClient.ConsumeSubmissionTasks(ctx, func(task repository.SubmissionTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing submission",
				slog.String("job_id", task.JobID),
				slog.String("video_id", task.VideoID),
			)
			return submissionSvc.Process(ctx, task)
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("submission consumer error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Ingest.ShutdownTimeout)
	defer shutdownCancel()

	// Stop consuming new messages, then wait for in-flight work.
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight work completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some work may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
