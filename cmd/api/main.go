package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"

	"legalize-docs/internal/api"
	"legalize-docs/internal/auth"
	"legalize-docs/internal/config"
	"legalize-docs/internal/metrics"
	"legalize-docs/internal/storage"
	appTemporal "legalize-docs/internal/temporal"
	"legalize-docs/internal/wizard"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]api.Pinger{}
	var contacts api.ContactSink = storage.NewMemoryStore()

	if cfg.PostgresDSN != "" {
		store, err := storage.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			fatal(logger, "connect postgres", err)
		}
		defer store.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = store.Ping(pingCtx)
		if err == nil {
			err = store.Migrate(pingCtx)
		}
		cancel()
		if err != nil {
			fatal(logger, "prepare postgres", err)
		}
		contacts = store
		checks["postgres"] = store
	}

	uploader := wizard.Uploader(wizard.DelayedUploader{Delay: cfg.UploadDelay})
	if cfg.MinioEnabled() {
		blob, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
		if err != nil {
			fatal(logger, "connect minio", err)
		}
		uploader = wizard.BlobUploader{Blob: blob}
		checks["minio"] = blob
	}

	var cooldowns auth.CooldownStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			fatal(logger, "parse redis url", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		cooldowns = auth.NewRedisCooldownStore(rdb, "legalize:resend:")
		checks["redis"] = pingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	submitter := wizard.Submitter(wizard.DelayedSubmitter{Delay: cfg.SubmitDelay})
	if cfg.TemporalSubmit {
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
			Logger:    tlog.NewStructuredLogger(logger),
		})
		if err != nil {
			fatal(logger, "connect temporal", err)
		}
		defer temporalClient.Close()
		submitter = &appTemporal.Submitter{
			Client:           temporalClient,
			TaskQueue:        cfg.TemporalTaskQueue,
			WorkflowIDPrefix: cfg.WorkflowIDPrefix,
		}
		checks["temporal"] = pingFunc(func(ctx context.Context) error {
			_, err := temporalClient.CheckHealth(ctx, &client.CheckHealthRequest{})
			return err
		})
	}

	gateway, err := auth.NewDemoGateway(auth.DemoConfig{
		Delay:     cfg.AuthDelay,
		Cooldowns: cooldowns,
		Logger:    logger,
	})
	if err != nil {
		fatal(logger, "init auth gateway", err)
	}

	registry := wizard.NewRegistry(wizard.RegistryConfig{
		IdleTTL: cfg.WizardIdleTTL,
		Logger:  logger,
		Metrics: m,
		Options: []wizard.Option{
			wizard.WithUploader(uploader),
			wizard.WithSubmitter(submitter),
			wizard.WithObserver(m),
			wizard.WithLogger(logger),
		},
	})
	go registry.Run(ctx, time.Minute)

	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	h, err := api.NewHandler(cfg, api.Deps{
		Registry: registry,
		Auth:     gateway,
		Sessions: auth.NewSessions(cfg.SessionSecret, "legalize-docs", auth.DefaultSessionTTL),
		Contacts: contacts,
		Metrics:  m,
		Logger:   logger,
		Checks:   checks,
	})
	if err != nil {
		fatal(logger, "init handler", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(h, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.HTTPPort, "temporal_submit", cfg.TemporalSubmit, "minio", cfg.MinioEnabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(logger, "http server failed", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
