package queue

import (
	"time"

	"github.com/hibiken/asynq"
)

// RetryDelayFunc returns an asynq retry delay function implementing
// exponential backoff: the base delay doubles on every retry and is capped
// at maxDelay. A job that exhausts its retries is archived by asynq and
// logged as a terminal failure.
func RetryDelayFunc(baseDelay, maxDelay time.Duration) asynq.RetryDelayFunc {
	return func(n int, _ error, _ *asynq.Task) time.Duration {
		return backoffDelay(n, baseDelay, maxDelay)
	}
}

// backoffDelay computes baseDelay * 2^n capped at maxDelay. n is the number
// of retries already performed for the job.
func backoffDelay(n int, baseDelay, maxDelay time.Duration) time.Duration {
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 10 * time.Minute
	}

	delay := baseDelay
	for i := 0; i < n; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
