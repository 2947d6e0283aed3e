package worker

import (
	"context"
	"testing"
	"time"
)

func TestThrottle_DelayBetweenCalls(t *testing.T) {
	th := NewThrottle(1000, 10, 20*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("three waits took %v, want at least 60ms of fixed delay", elapsed)
	}
}

func TestThrottle_CancelledContext(t *testing.T) {
	th := NewThrottle(1000, 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := th.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestThrottle_ZeroDelaySkipsPause(t *testing.T) {
	th := NewThrottle(1000, 10, 0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-delay waits took %v", elapsed)
	}
}

func TestNewThrottle_FloorsInvalidArguments(t *testing.T) {
	th := NewThrottle(0, 0, 0)
	if !th.Allow() {
		t.Error("floored throttle should allow the first call")
	}
}

func TestThrottle_AllowRespectsBurst(t *testing.T) {
	th := NewThrottle(0.001, 1, 0)

	if !th.Allow() {
		t.Fatal("first call within burst should be allowed")
	}
	if th.Allow() {
		t.Error("second immediate call should exceed the burst")
	}
}
