package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. Backend code wraps errors
// worth another attempt (a refused connection while Redis is still coming
// up, for example); anything unwrapped aborts the retry loop immediately.
type RetryableError struct{ Err error }

// Error returns the wrapped error's message.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil so call sites can
// wrap return values unconditionally.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the delay from one
// second between attempts. Only errors marked with Retryable trigger
// another attempt. NewRedisCache uses this around its connect ping, since
// a server deployment usually starts alongside its cache.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
