package queue

import (
	"context"
	"fmt"

	"gobarber_backend/internal/email"
	"gobarber_backend/platform/config"
	"gobarber_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Mail copy uses the same human-readable slot format as the provider
// notification, e.g. "September 01 at 10h00".
const mailDateLayout = "January 02 at 15h04"

// Worker drains the job queue in an execution context independent of request
// handling. Handler failures are retried by asynq with the configured
// backoff; a job whose retries are exhausted is archived and surfaced
// through the error log.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

// NewWorker creates the asynq server and registers a handler per task type.
func NewWorker(cfg config.QueueConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetQueueConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency:    concurrency,
		Queues:         map[string]int{queue: 1},
		RetryDelayFunc: RetryDelayFunc(cfg.GetQueueRetryBaseDelay(), cfg.GetQueueRetryMaxDelay()),
		ErrorHandler:   asynq.ErrorHandlerFunc(errorHandler(log)),
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskCancellationMail, w.handleCancellationMail)

	return w, nil
}

// Run blocks processing jobs until ctx is canceled, then shuts the server
// down gracefully.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("queue worker stopped", "error", err)
	}
}

// handleCancellationMail renders and sends the cancellation email. It
// performs no retries of its own: a transport error is returned unchanged so
// the queue applies its backoff policy. Duplicate delivery on re-invocation
// is an accepted tradeoff of at-least-once semantics; a repeated email is a
// nuisance, not a correctness violation.
func (w *Worker) handleCancellationMail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCancellationMailPayload(task)
	if err != nil {
		// Malformed payloads never become valid; skip retrying.
		return fmt.Errorf("parse cancellation-mail payload: %v: %w", err, asynq.SkipRetry)
	}

	data := email.CancellationData{
		ProviderName: payload.ProviderName,
		UserName:     payload.UserName,
		Date:         payload.Date.UTC().Format(mailDateLayout),
	}

	return w.sender.SendCancellationEmail(ctx, payload.ProviderName, payload.ProviderEmail, data)
}

// errorHandler logs every handler failure. Once retries are exhausted the
// log line marks the failure terminal; the job itself lands in the asynq
// archive for operator inspection.
func errorHandler(log *logger.Logger) func(ctx context.Context, task *asynq.Task, err error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		if retried >= maxRetry {
			log.Error("job failed permanently",
				"task", task.Type(),
				"retries", retried,
				"error", err.Error(),
			)
			return
		}
		log.QueueError(task.Type(), retried, err)
	}
}
