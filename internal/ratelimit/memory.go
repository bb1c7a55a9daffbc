package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// MemoryBucket is the single-process fallback when Redis is not
// configured. Same continuous-refill semantics as the Redis bucket.
type MemoryBucket struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     Config
	now     func() time.Time
}

func NewMemoryBucket(cfg Config) *MemoryBucket {
	return &MemoryBucket{
		buckets: make(map[string]*bucket),
		cfg:     cfg.withDefaults(),
		now:     time.Now,
	}
}

func (m *MemoryBucket) Allow(_ context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, errors.New("rate limiter key is empty")
	}

	rate := m.cfg.rate()
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(m.cfg.Requests), last: now}
		m.buckets[key] = b
	} else {
		elapsed := now.Sub(b.last).Seconds()
		if elapsed > 0 {
			b.tokens += elapsed * rate
			if b.tokens > float64(m.cfg.Requests) {
				b.tokens = float64(m.cfg.Requests)
			}
		}
		b.last = now
	}

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	return Result{
		Allowed:    allowed,
		Remaining:  int(b.tokens),
		RetryAfter: retryAfter(allowed, b.tokens, rate),
	}, nil
}
