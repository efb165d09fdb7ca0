package scheduler

import (
	"fmt"
	"time"

	"leadverify/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues deferred cleanup tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates the asynq client from configuration. It fails when no
// Redis URL is configured; callers treat that as "scheduling disabled".
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleJobCleanup enqueues eviction of the job at the given time.
func (c *Client) ScheduleJobCleanup(jobID string, at time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewJobCleanupTask(JobCleanupPayload{JobID: jobID})
	if err != nil {
		return err
	}

	_, err = c.client.Enqueue(task, asynq.ProcessAt(at), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
