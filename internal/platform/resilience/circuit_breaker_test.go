package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(2, time.Minute, 1)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("closed breaker must allow: %v", err)
	}
	breaker.RecordFailure()
	breaker.RecordFailure()

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	breaker := NewCircuitBreaker(1, time.Minute, 1)
	currentTime := time.Now()
	breaker.now = func() time.Time { return currentTime }

	breaker.RecordFailure()
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("state = %s, want open", breaker.State())
	}

	currentTime = currentTime.Add(2 * time.Minute)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("half-open probe must be allowed: %v", err)
	}
	breaker.RecordSuccess()

	if breaker.State() != CircuitStateClosed {
		t.Fatalf("state = %s, want closed after probe success", breaker.State())
	}
}
