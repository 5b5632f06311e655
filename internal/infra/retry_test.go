package infra_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-assistant/internal/infra"
)

func fastBackoff() infra.Backoff {
	return infra.Backoff{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Factor: 2}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := infra.Retry(context.Background(), fastBackoff(), func() error {
		calls++
		if calls < 3 {
			return errors.New("device busy")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	busy := errors.New("device busy")
	err := infra.Retry(context.Background(), fastBackoff(), func() error {
		calls++
		return busy
	})
	if !errors.Is(err, busy) || calls != 3 {
		t.Errorf("got %v after %d calls, want device busy after 3", err, calls)
	}
}

func TestRetry_Permanent(t *testing.T) {
	calls := 0
	missing := errors.New("no input device")
	err := infra.Retry(context.Background(), fastBackoff(), func() error {
		calls++
		return infra.Permanent(missing)
	})
	if err != missing || calls != 1 {
		t.Errorf("got %v after %d calls, want no input device after 1", err, calls)
	}
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := fastBackoff()
	b.Delay = time.Hour
	err := infra.Retry(ctx, b, func() error { return errors.New("device busy") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
}
