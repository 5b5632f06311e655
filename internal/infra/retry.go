package infra

import (
	"context"
	"errors"
	"time"
)

// Backoff describes how often and how long to retry opening a device.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
	Factor   float64
}

func DefaultBackoff() Backoff {
	return Backoff{
		Attempts: 3,
		Delay:    200 * time.Millisecond,
		MaxDelay: 2 * time.Second,
		Factor:   2.0,
	}
}

type permanentError struct {
	err error
}

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retry calls fn until it succeeds, returns a Permanent error, or the
// attempts run out. The last error is returned unwrapped from Permanent.
func Retry(ctx context.Context, b Backoff, fn func() error) error {
	delay := b.Delay
	var lastErr error

	for attempt := 1; attempt <= b.Attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err

		if attempt == b.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * b.Factor)
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}

	return lastErr
}
