package memory

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "POST:/sales:10.0.0.1", 3, time.Minute)
		if err != nil || !allowed {
			t.Fatalf("request %d: expected allowed, got %v (%v)", i+1, allowed, err)
		}
	}

	if allowed, _ := limiter.Allow(ctx, "POST:/sales:10.0.0.1", 3, time.Minute); allowed {
		t.Fatal("expected fourth request to be limited")
	}
	if allowed, _ := limiter.Allow(ctx, "POST:/sales:10.0.0.2", 3, time.Minute); !allowed {
		t.Fatal("expected a different client to be allowed")
	}
}

func TestRateLimiter_CleanupStopsOnCancel(t *testing.T) {
	limiter := NewRateLimiter()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.StartCleanup(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
