package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/formbridge/formbridge/internal/submission/domain"
)

func TestFormatSummary(t *testing.T) {
	got := formatSummary(domain.Submission{
		ID:        7,
		Name:      "Jane Doe",
		Phone:     "+15551234567",
		Message:   "Hi",
		CreatedAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"🆕 New Form Submission",
		"👤 Name: Jane Doe",
		"📧 Email: Not provided",
		"📱 Phone: +15551234567",
		"🏢 Company: Not provided",
		"💬 Message: Hi",
		"🆔 Submission ID: 7",
		"⏰ Submitted: 2024-03-10 15:30:00",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestFormatSummaryKeepsProvidedOptionals(t *testing.T) {
	got := formatSummary(domain.Submission{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   "123",
		Company: "Acme",
	})

	if strings.Contains(got, "Not provided") {
		t.Fatalf("provided optionals replaced with placeholder:\n%s", got)
	}
	if !strings.Contains(got, "📧 Email: jane@example.com") {
		t.Fatalf("email missing:\n%s", got)
	}
}
