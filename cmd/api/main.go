package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubedigest/internal/api/handler"
	"github.com/hszk-dev/tubedigest/internal/api/middleware"
	"github.com/hszk-dev/tubedigest/internal/config"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/postgres"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/queue"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/youtube"
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

	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create YouTube client: %w", err)
	}

	channelRepo := postgres.NewChannelRepository(pgClient.Pool())
	videoRepo := postgres.NewVideoRepository(pgClient.Pool())

	channelSvc := usecase.NewChannelService(channelRepo, ytClient, usecase.ChannelServiceConfig{
		CallTimeout: cfg.Ingest.CallTimeout,
	})
	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo),
		cache.NewRedisVideoCache(redisClient),
		usecase.DefaultCachedVideoServiceConfig(),
	)
	submissionSvc := usecase.NewSubmissionService(
		channelRepo,
		videoRepo,
		ytClient,
		nil, // the API never fetches transcripts, the worker does
		nil,
		nil,
		cache.NewRedisJobStore(redisClient, cfg.Ingest.SubmissionJobTTL),
		queueClient,
		usecase.SubmissionServiceConfig{CallTimeout: cfg.Ingest.CallTimeout},
	)

	issuer := middleware.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate := cache.NewRedisGate(redisClient)

	r := setupRouter(
		logger,
		issuer,
		handler.NewAuthHandler(issuer, cfg.Auth.AdminUser, cfg.Auth.AdminPassword),
		handler.NewChannelHandler(channelSvc),
		handler.NewVideoHandler(videoSvc),
		handler.NewIngestHandler(queueClient, gate),
		handler.NewSubmissionHandler(submissionSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	issuer *middleware.TokenIssuer,
	authHandler *handler.AuthHandler,
	channelHandler *handler.ChannelHandler,
	videoHandler *handler.VideoHandler,
	ingestHandler *handler.IngestHandler,
	submissionHandler *handler.SubmissionHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Public read path.
		r.Get("/videos", videoHandler.List)
		r.Get("/videos/{id}", videoHandler.Get)

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(issuer))

			r.Get("/channels", channelHandler.List)
			r.Post("/channels", channelHandler.Create)
			r.Delete("/channels/{id}", channelHandler.Delete)

			r.Delete("/videos/{id}", videoHandler.Delete)

			r.Post("/ingest/run", ingestHandler.Run)
			r.Get("/ingest/cron", ingestHandler.GetCronGate)
			r.Put("/ingest/cron", ingestHandler.SetCronGate)

			r.Post("/submissions", submissionHandler.Create)
			r.Get("/submissions/{id}", submissionHandler.Get)
		})
	})

	return r
}
