package scheduler

import (
	"context"
	"fmt"

	"leadverify/platform/config"
	"leadverify/platform/logger"

	"github.com/hibiken/asynq"
)

// JobRemover evicts a verification job from the job store.
type JobRemover interface {
	Remove(id string)
}

// Worker consumes scheduled cleanup tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  JobRemover
	log    *logger.Logger
}

// NewWorker creates the asynq worker from configuration.
func NewWorker(cfg config.SchedulerConfig, store JobRemover, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
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
		server: server,
		mux:    mux,
		store:  store,
		log:    log,
	}

	mux.HandleFunc(TaskJobCleanup, w.handleJobCleanup)

	return w, nil
}

func (w *Worker) handleJobCleanup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseJobCleanupPayload(task)
	if err != nil {
		return err
	}

	w.store.Remove(payload.JobID)
	w.log.Info("evicted completed job", "job_id", payload.JobID)
	return nil
}

// Run serves tasks until the context is canceled.
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
