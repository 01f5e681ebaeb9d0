package cache

import (
	"context"
	"errors"
	"time"
)

// Backend failures are either permanent (bad credentials, wrong type at a
// key) or transient (connection refused, i/o timeout). Backends mark the
// transient ones with [Retryable] so connection setup can retry them.

// retryable marks an error as transient.
type retryable struct{ err error }

func (e *retryable) Error() string { return e.err.Error() }
func (e *retryable) Unwrap() error { return e.err }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryable{err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r *retryable
	return errors.As(err, &r)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt; it doubles after each
// failure.
var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, fails with an error not
// marked [Retryable], or has been tried three times. It returns the last
// error, or ctx.Err() if ctx ends while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
