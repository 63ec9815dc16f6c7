package queue

import (
	"testing"
	"time"
)

func TestBackoffDelayDoublesPerRetry(t *testing.T) {
	base := 10 * time.Second
	max := 10 * time.Minute

	want := []time.Duration{
		10 * time.Second,
		20 * time.Second,
		40 * time.Second,
		80 * time.Second,
		160 * time.Second,
	}
	for n, expected := range want {
		if got := backoffDelay(n, base, max); got != expected {
			t.Errorf("backoffDelay(%d) = %v, want %v", n, got, expected)
		}
	}
}

func TestBackoffDelayIsStrictlyIncreasingUntilCap(t *testing.T) {
	base := time.Second
	max := time.Hour

	prev := backoffDelay(0, base, max)
	for n := 1; n < 12; n++ {
		cur := backoffDelay(n, base, max)
		if cur <= prev {
			t.Fatalf("delay did not increase at retry %d: %v <= %v", n, cur, prev)
		}
		prev = cur
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	base := 10 * time.Second
	max := time.Minute

	for n := 3; n < 20; n++ {
		if got := backoffDelay(n, base, max); got != max {
			t.Errorf("backoffDelay(%d) = %v, want cap %v", n, got, max)
		}
	}
}

func TestBackoffDelayDefaultsOnNonPositiveInputs(t *testing.T) {
	if got := backoffDelay(0, 0, time.Minute); got != time.Second {
		t.Errorf("expected default base delay, got %v", got)
	}
	if got := backoffDelay(30, time.Second, 0); got != 10*time.Minute {
		t.Errorf("expected default max delay, got %v", got)
	}
}

func TestRetryDelayFuncUsesConfiguredDelays(t *testing.T) {
	fn := RetryDelayFunc(5*time.Second, time.Minute)

	if got := fn(0, nil, nil); got != 5*time.Second {
		t.Errorf("first retry delay = %v, want 5s", got)
	}
	if got := fn(10, nil, nil); got != time.Minute {
		t.Errorf("late retry delay = %v, want cap 1m", got)
	}
}
