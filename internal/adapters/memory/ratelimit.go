package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rafaelleal24/aceitera/internal/adapters/http/middleware"
)

const visitorIdleTimeout = 5 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per key: limit tokens refilled evenly over
// window, with a burst of limit.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{visitors: make(map[string]*visitor)}
}

var _ middleware.RateLimiter = (*RateLimiter)(nil)

func (r *RateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	return r.visitor(key, limit, window).Allow(), nil
}

func (r *RateLimiter) visitor(key string, limit int, window time.Duration) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[key]
	if !ok {
		every := rate.Every(window / time.Duration(max(limit, 1)))
		v = &visitor{limiter: rate.NewLimiter(every, limit)}
		r.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// StartCleanup forgets idle visitors until ctx is done.
func (r *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			for key, v := range r.visitors {
				if time.Since(v.lastSeen) > visitorIdleTimeout {
					delete(r.visitors, key)
				}
			}
			r.mu.Unlock()
		}
	}
}
