package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)
	key := "generation"

	for i := 0; i < 3; i++ {
		if !l.Allow(key) {
			t.Fatalf("Call %d should be within burst", i)
		}
	}
	if l.Allow(key) {
		t.Error("Burst exhausted, call should be denied")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)
	if !l.Allow("generation") {
		t.Fatal("First call on generation should pass")
	}
	if !l.Allow("sentiment") {
		t.Error("Other collaborator must have its own budget")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	key := "slow"
	l.Allow(key) // drain the single token

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, key); err == nil {
		t.Error("Expected context deadline error while waiting for a token")
	}
}

func TestLimiter_SetRateOverridesDefault(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.SetRate("generation", 1000, 5)

	for i := 0; i < 5; i++ {
		if !l.Allow("generation") {
			t.Fatalf("Call %d should pass after SetRate", i)
		}
	}
}

func TestLimiter_ZeroBurstFloored(t *testing.T) {
	l := NewLimiter(10, 0)
	if !l.Allow("x") {
		t.Error("Burst must be floored at 1")
	}
}
