package source

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/planline/planline/internal/milestone"
)

const (
	maxAttempts  = 3
	baseDelay    = 500 * time.Millisecond
	maxDelay     = 5 * time.Second
	jitterFactor = 0.25
)

// TransientError marks a failure worth retrying, such as a timeout or
// an overloaded source. Anything else fails the refresh immediately.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable. A nil err returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// fetchWithRetry fetches one page, retrying transient failures with
// exponential backoff.
func (l *Loader) fetchWithRetry(ctx context.Context, q Query) ([]milestone.Record, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		records, err := l.src.FetchPage(ctx, q)
		if err == nil {
			return records, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff(attempt)):
		}
	}
	return nil, lastErr
}

// backoffDelay returns the wait before the next attempt: exponential
// with jitter, capped at maxDelay.
func backoffDelay(attempt int) time.Duration {
	delay := baseDelay << (attempt - 1)
	if delay > maxDelay {
		delay = maxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(float64(delay) * jitterFactor)))
	return delay + jitter
}
