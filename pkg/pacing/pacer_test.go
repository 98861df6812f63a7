package pacing

import (
	"context"
	"testing"
	"time"
)

func TestPause_ZeroDelayReturnsImmediately(t *testing.T) {
	p := New(0)

	start := time.Now()
	p.Pause(context.Background())
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("Pause took %v, want immediate return for zero delay", elapsed)
	}
}

func TestPause_NilPacer(t *testing.T) {
	var p *Pacer
	p.Pause(context.Background())
}

func TestPause_SleepsDelay(t *testing.T) {
	p := New(30 * time.Millisecond)

	start := time.Now()
	p.Pause(context.Background())
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("Pause took %v, want at least the configured delay", elapsed)
	}
}

func TestPause_ContextCancelled(t *testing.T) {
	p := New(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	p.Pause(ctx)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Pause took %v after cancellation, want immediate return", elapsed)
	}
}

func TestDelay(t *testing.T) {
	if got := Default().Delay(); got != DefaultDelay {
		t.Errorf("Delay = %v, want %v", got, DefaultDelay)
	}
	if got := New(time.Second).Delay(); got != time.Second {
		t.Errorf("Delay = %v, want 1s", got)
	}
}
