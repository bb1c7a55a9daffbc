package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBucketExhaustsAndRefills(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryBucket(Config{Requests: 2, Window: time.Minute})
	m.now = func() time.Time { return now }

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := m.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := m.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("third request should be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("rejected request should carry a retry hint, got %v", res.RetryAfter)
	}

	// Half a window refills one token.
	now = now.Add(30 * time.Second)
	res, err = m.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !res.Allowed {
		t.Fatal("request after refill should be allowed")
	}
}

func TestMemoryBucketKeysAreIndependent(t *testing.T) {
	m := NewMemoryBucket(Config{Requests: 1, Window: time.Hour})
	ctx := context.Background()

	if res, _ := m.Allow(ctx, "a"); !res.Allowed {
		t.Fatal("first key should be allowed")
	}
	if res, _ := m.Allow(ctx, "a"); res.Allowed {
		t.Fatal("first key should now be exhausted")
	}
	if res, _ := m.Allow(ctx, "b"); !res.Allowed {
		t.Fatal("second key must not share the first key's bucket")
	}
}

func TestMemoryBucketRejectsEmptyKey(t *testing.T) {
	m := NewMemoryBucket(Config{})
	if _, err := m.Allow(context.Background(), ""); err == nil {
		t.Fatal("empty key must error")
	}
}
