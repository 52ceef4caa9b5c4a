package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"legalize-docs/internal/config"
	"legalize-docs/internal/storage"
	appTemporal "legalize-docs/internal/temporal"
)

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := storage.NewPostgresStore(cfg.PostgresDSN)
	if err != nil {
		fatal(logger, "connect postgres", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Migrate(ctx)
	cancel()
	if err != nil {
		fatal(logger, "migrate postgres", err)
	}

	activities := &appTemporal.Activities{Store: store}
	if cfg.MinioEnabled() {
		blob, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
		if err != nil {
			fatal(logger, "connect minio", err)
		}
		activities.Blob = blob
	}

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    tlog.NewStructuredLogger(logger),
	})
	if err != nil {
		fatal(logger, "connect temporal", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cfg.TemporalTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(appTemporal.ServiceRequestWorkflow, workflow.RegisterOptions{Name: appTemporal.ServiceRequestWorkflowName})
	w.RegisterActivity(activities.RecordRequestActivity)
	w.RegisterActivity(activities.VerifyUploadActivity)
	w.RegisterActivity(activities.AcknowledgeRequestActivity)
	w.RegisterActivity(activities.MarkRequestFailedActivity)

	logger.Info("worker running", "task_queue", cfg.TemporalTaskQueue, "verify_uploads", activities.Blob != nil)
	if err := w.Run(worker.InterruptCh()); err != nil {
		fatal(logger, "worker stopped with error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
