package queue

import (
	"context"
	"fmt"

	"gobarber_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// CancellationMailEnqueuer is the narrow interface services depend on to
// enqueue cancellation mail without knowing about asynq.
type CancellationMailEnqueuer interface {
	EnqueueCancellationMail(ctx context.Context, payload CancellationMailPayload) error
}

// Client enqueues background jobs. It is safe for concurrent use from
// request handlers; asynq serializes access to the backlog.
type Client struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

// NewClient creates an enqueue client from the queue configuration.
func NewClient(cfg config.QueueConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client:   asynq.NewClient(opt),
		queue:    queue,
		maxRetry: cfg.GetQueueMaxRetry(),
	}, nil
}

// Close releases the underlying redis connections.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueCancellationMail adds a cancellation-mail job to the backlog,
// immediately eligible to run.
func (c *Client) EnqueueCancellationMail(ctx context.Context, payload CancellationMailPayload) error {
	task, err := NewCancellationMailTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(c.maxRetry),
	)
	return err
}

var _ CancellationMailEnqueuer = (*Client)(nil)

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}

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
