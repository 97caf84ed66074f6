package reminder

import (
	"context"
	"sync"
	"time"
)

// Limiter gates how often a key may perform an action. Allow reports whether
// the key is clear to act and, if so, starts its cooldown window.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// MemoryLimiter is a process-local Limiter for deployments without Redis
type MemoryLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Allow reports whether key's last allowed action is older than window
func (l *MemoryLimiter) Allow(_ context.Context, key string, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok && now.Sub(last) < window {
		return false, nil
	}
	l.last[key] = now

	// Drop stale keys so the map does not grow unbounded
	for k, t := range l.last {
		if now.Sub(t) >= window {
			delete(l.last, k)
		}
	}

	return true, nil
}
