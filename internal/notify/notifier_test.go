package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/formbridge/formbridge/internal/config"
	"github.com/formbridge/formbridge/internal/submission/domain"
	"go.uber.org/zap"
)

type fakeSender struct {
	name  string
	err   error
	sent  []string
	calls int
}

func (f *fakeSender) Name() string {
	return f.name
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+": "+body)
	return nil
}

func testHolder(order ...string) *config.NotifyConfigHolder {
	cfg := config.DefaultNotifyConfig()
	if len(order) > 0 {
		cfg.ProviderOrder = order
	}
	return config.StaticNotifyConfigHolder(cfg)
}

func testSubmission() domain.Submission {
	return domain.Submission{
		ID:        42,
		Name:      "Jane Doe",
		Phone:     "+15551234567",
		Message:   "Hi",
		CreatedAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestNotifySubmissionFirstProviderWins(t *testing.T) {
	primary := &fakeSender{name: "twilio"}
	secondary := &fakeSender{name: "whatsapp"}
	n := NewNotifier(zap.NewNop(), []Sender{primary, secondary}, testHolder(), "+19990001111", nil)

	if !n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("expected delivery to succeed")
	}
	if primary.calls != 1 {
		t.Fatalf("primary calls = %d, want 1", primary.calls)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary should not be tried after a success, calls = %d", secondary.calls)
	}
}

func TestNotifySubmissionFallsBackOnFailure(t *testing.T) {
	primary := &fakeSender{name: "twilio", err: errors.New("boom")}
	secondary := &fakeSender{name: "whatsapp"}
	n := NewNotifier(zap.NewNop(), []Sender{primary, secondary}, testHolder(), "+19990001111", nil)

	if !n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("expected fallback provider to deliver")
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestNotifySubmissionAllProvidersFail(t *testing.T) {
	primary := &fakeSender{name: "twilio", err: errors.New("boom")}
	secondary := &fakeSender{name: "whatsapp", err: errors.New("also boom")}
	n := NewNotifier(zap.NewNop(), []Sender{primary, secondary}, testHolder(), "+19990001111", nil)

	if n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("expected delivery to fail")
	}
}

func TestNotifySubmissionNoProvidersConfigured(t *testing.T) {
	n := NewNotifier(zap.NewNop(), nil, testHolder(), "+19990001111", nil)

	if n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("no providers must report non-delivery")
	}
}

func TestNotifySubmissionSkipsUnknownOrderEntries(t *testing.T) {
	sender := &fakeSender{name: "whatsapp"}
	n := NewNotifier(zap.NewNop(), []Sender{sender}, testHolder("twilio", "whatsapp"), "+19990001111", nil)

	if !n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("configured sender further down the order must still run")
	}
}

func TestNotifyAcknowledgementUsesConfiguredText(t *testing.T) {
	sender := &fakeSender{name: "twilio"}
	n := NewNotifier(zap.NewNop(), []Sender{sender}, testHolder(), "+19990001111", nil)

	if !n.NotifyAcknowledgement(context.Background(), "+15551234567") {
		t.Fatal("expected acknowledgement delivery")
	}
	want := "+15551234567: " + config.DefaultNotifyConfig().AcknowledgementText
	if len(sender.sent) != 1 || sender.sent[0] != want {
		t.Fatalf("unexpected send: %v", sender.sent)
	}
}

func TestNotifySkipsEmptyRecipient(t *testing.T) {
	sender := &fakeSender{name: "twilio"}
	n := NewNotifier(zap.NewNop(), []Sender{sender}, testHolder(), "", nil)

	if n.NotifySubmission(context.Background(), testSubmission()) {
		t.Fatal("missing recipient must not deliver")
	}
	if sender.calls != 0 {
		t.Fatalf("sender must not be called, calls = %d", sender.calls)
	}
}
