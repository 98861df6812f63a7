package fetch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func transientClassify(err error) ErrorClass { return ErrorClassServer }

func TestRetryWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(5), func() error {
		calls++
		return nil
	}, transientClassify)

	if err != nil {
		t.Fatalf("retryWithBackoff failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, transientClassify)

	if err != nil {
		t.Fatalf("retryWithBackoff failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_Exhaustion(t *testing.T) {
	lastErr := errors.New("still broken")
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(4), func() error {
		calls++
		return lastErr
	}, transientClassify)

	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("error chain lost the last attempt error: %v", err)
	}
}

func TestRetryWithBackoff_NonRetryableAbortsImmediately(t *testing.T) {
	terminal := errors.New("bad request")
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(5), func() error {
		calls++
		return terminal
	}, func(error) ErrorClass { return ErrorClassClient })

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, terminal) {
		t.Errorf("error = %v, want %v", err, terminal)
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("Non-retryable error must not be wrapped as exhaustion")
	}
}

func TestRetryWithBackoff_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    5 * time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- retryWithBackoff(ctx, cfg, func() error {
			calls++
			return errors.New("transient")
		}, transientClassify)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrContextCancelled) {
			t.Errorf("error = %v, want ErrContextCancelled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retryWithBackoff did not return after context cancellation")
	}
}
