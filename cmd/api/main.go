package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadverify/internal/export"
	apphttp "leadverify/internal/http"
	"leadverify/internal/http/router"
	"leadverify/internal/scheduler"
	"leadverify/internal/storage"
	"leadverify/internal/vapi"
	"leadverify/internal/verification"
	"leadverify/internal/verification/service"
	"leadverify/internal/webhook"
	"leadverify/platform/config"
	"leadverify/platform/events"
	"leadverify/platform/logger"
	"leadverify/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	vapiClient := vapi.NewClient(cfg, log)

	sink, err := export.NewCSVSink(cfg.ExportDir)
	if err != nil {
		log.Error("failed to initialize result sink", "error", err)
		panic("failed to initialize result sink: " + err.Error())
	}

	store := service.NewMemoryStore()

	cleanupScheduler, closeScheduler := initCleanupScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Optional mirror of result files to object storage (MinIO)
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure results bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, cfg.MinIOResultsBucket)
		}); err != nil {
			log.Error("failed to ensure results bucket exists", "error", err, "bucket", cfg.MinIOResultsBucket)
			panic("failed to ensure results bucket exists: " + err.Error())
		}
		export.NewResultUploader(storageSvc, cfg.MinIOResultsBucket, log).Register(eventBus)
		log.Info("storage service initialized", "resultsBucket", cfg.MinIOResultsBucket)
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	verificationModule := verification.NewModule(vapiClient, sink, cleanupScheduler, store, eventBus, val, log, cfg)
	webhookModule := webhook.NewModule(verificationModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			verificationModule,
			webhookModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if worker := initCleanupWorker(cfg, store, log); worker != nil {
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// initCleanupScheduler wires the asynq client when Redis is configured.
// Without it, completed jobs stay in memory until the process exits.
func initCleanupScheduler(cfg config.SchedulerConfig, log *logger.Logger) (service.CleanupScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; job eviction disabled")
		return nil, nil
	}

	cleanupClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize cleanup scheduler client", "error", err)
		return nil, nil
	}

	return cleanupClient, func() {
		_ = cleanupClient.Close()
	}
}

func initCleanupWorker(cfg config.SchedulerConfig, store scheduler.JobRemover, log *logger.Logger) *scheduler.Worker {
	if cfg.GetRedisURL() == "" {
		return nil
	}

	worker, err := scheduler.NewWorker(cfg, store, log)
	if err != nil {
		log.Error("failed to initialize cleanup worker", "error", err)
		return nil
	}
	return worker
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

	return errors.New(name + ": " + lastErr.Error())
}
