package notify

import (
	"context"
	"strings"

	"github.com/formbridge/formbridge/internal/config"
	"github.com/formbridge/formbridge/internal/observability/metrics"
	"github.com/formbridge/formbridge/internal/submission/domain"
	"go.uber.org/zap"
)

// Notifier walks the configured sender chain in priority order and
// stops at the first success. Delivery is best-effort: failures are
// logged and counted, never returned to the intake path.
type Notifier struct {
	log       *zap.Logger
	senders   map[string]Sender
	holder    *config.NotifyConfigHolder
	recipient string
	metrics   *metrics.Metrics
}

func NewNotifier(log *zap.Logger, senders []Sender, holder *config.NotifyConfigHolder, recipient string, m *metrics.Metrics) *Notifier {
	byName := make(map[string]Sender, len(senders))
	for _, sender := range senders {
		if sender == nil {
			continue
		}
		byName[strings.ToLower(sender.Name())] = sender
	}
	return &Notifier{
		log:       log.Named("notify"),
		senders:   byName,
		holder:    holder,
		recipient: strings.TrimSpace(recipient),
		metrics:   m,
	}
}

// NotifySubmission delivers the submission summary to the fixed
// recipient number. Returns whether any provider accepted the message.
func (n *Notifier) NotifySubmission(ctx context.Context, sub domain.Submission) bool {
	delivered := n.deliver(ctx, n.recipient, formatSummary(sub), zap.Int64("submission_id", sub.ID))
	n.count("submission", delivered)
	return delivered
}

// NotifyAcknowledgement sends the fixed thank-you text back to the
// submitter. Callers only invoke this after a delivered submission
// notification.
func (n *Notifier) NotifyAcknowledgement(ctx context.Context, phone string) bool {
	delivered := n.deliver(ctx, phone, n.holder.Get().AcknowledgementText)
	n.count("acknowledgement", delivered)
	return delivered
}

func (n *Notifier) deliver(ctx context.Context, to, body string, extra ...zap.Field) bool {
	to = strings.TrimSpace(to)
	if to == "" {
		n.log.Warn("notification skipped: no recipient number", extra...)
		return false
	}

	attempted := false
	for _, name := range n.holder.Get().ProviderOrder {
		sender, ok := n.senders[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		attempted = true

		err := sender.Send(ctx, to, body)
		if err == nil {
			n.countAttempt(sender.Name(), "delivered")
			n.log.Info("notification delivered",
				append([]zap.Field{zap.String("provider", sender.Name())}, extra...)...)
			return true
		}

		// A failed provider is not retried; the next one in priority
		// order gets the attempt.
		n.countAttempt(sender.Name(), "failed")
		n.log.Warn("notification attempt failed",
			append([]zap.Field{zap.String("provider", sender.Name()), zap.Error(err)}, extra...)...)
	}

	if !attempted {
		n.log.Info("no messaging provider configured, notification dropped", extra...)
	}
	return false
}

func (n *Notifier) count(kind string, delivered bool) {
	if n.metrics == nil {
		return
	}
	outcome := "failed"
	if delivered {
		outcome = "delivered"
	}
	n.metrics.Notifications.WithLabelValues(kind, outcome).Inc()
}

func (n *Notifier) countAttempt(provider, outcome string) {
	if n.metrics == nil {
		return
	}
	n.metrics.ProviderAttempts.WithLabelValues(provider, outcome).Inc()
}
