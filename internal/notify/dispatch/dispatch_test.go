package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/formbridge/formbridge/internal/submission/domain"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	mu        sync.Mutex
	delivered bool
	notified  []int64
	acked     []string
}

func (f *fakeNotifier) NotifySubmission(_ context.Context, sub domain.Submission) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, sub.ID)
	return f.delivered
}

func (f *fakeNotifier) NotifyAcknowledgement(_ context.Context, phone string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, phone)
	return true
}

func (f *fakeNotifier) snapshot() (notified []int64, acked []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.notified...), append([]string(nil), f.acked...)
}

func newTestDispatcher(t *testing.T, notifier Notifier, cfg Config) *Dispatcher {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewDispatcher(zap.NewNop(), node, notifier, cfg)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatcherAcknowledgesAfterDelivery(t *testing.T) {
	notifier := &fakeNotifier{delivered: true}
	d := newTestDispatcher(t, notifier, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.RunForever(ctx)

	d.Enqueue(domain.Submission{ID: 1, Phone: "+15551234567"})

	waitFor(t, func() bool {
		_, acked := notifier.snapshot()
		return len(acked) == 1
	})

	notified, acked := notifier.snapshot()
	if len(notified) != 1 || notified[0] != 1 {
		t.Fatalf("unexpected notifications: %v", notified)
	}
	if acked[0] != "+15551234567" {
		t.Fatalf("acknowledgement went to %q", acked[0])
	}
}

func TestDispatcherSkipsAckWhenDeliveryFails(t *testing.T) {
	notifier := &fakeNotifier{delivered: false}
	d := newTestDispatcher(t, notifier, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.RunForever(ctx)

	d.Enqueue(domain.Submission{ID: 2, Phone: "+15551234567"})

	waitFor(t, func() bool {
		notified, _ := notifier.snapshot()
		return len(notified) == 1
	})

	time.Sleep(20 * time.Millisecond)
	_, acked := notifier.snapshot()
	if len(acked) != 0 {
		t.Fatalf("acknowledgement must not follow a failed delivery: %v", acked)
	}
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	notifier := &fakeNotifier{delivered: true}
	// No worker draining; capacity 1 means the second job is dropped.
	d := newTestDispatcher(t, notifier, Config{QueueSize: 1})

	d.Enqueue(domain.Submission{ID: 1})
	d.Enqueue(domain.Submission{ID: 2})

	if len(d.jobs) != 1 {
		t.Fatalf("queue length = %d, want 1", len(d.jobs))
	}
}
