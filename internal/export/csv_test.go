package export

import (
	"strings"
	"testing"
	"time"

	"github.com/formbridge/formbridge/internal/submission/domain"
)

func TestRenderHeaderOnly(t *testing.T) {
	got := Render(nil)
	if got != "Name,Email,Phone,Company,Message,Created At" {
		t.Fatalf("unexpected empty render: %q", got)
	}
}

func TestRenderRow(t *testing.T) {
	created := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	got := Render([]domain.Submission{
		{
			ID:        1,
			Name:      "Jane Doe",
			Phone:     "+15551234567",
			Message:   "Hi",
			CreatedAt: created,
		},
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	// 10:00 UTC is 15:30 in IST.
	want := `"Jane Doe","","'+15551234567","","Hi","'2024-03-10 15:30:00"`
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %s\nwant %s", lines[1], want)
	}
}

func TestRenderEscapesEmbeddedQuotes(t *testing.T) {
	got := Render([]domain.Submission{
		{
			Name:      `Acme "The Best" Corp`,
			Phone:     "15551234567",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	})

	if !strings.Contains(got, `"Acme ""The Best"" Corp"`) {
		t.Fatalf("embedded quotes not doubled: %q", got)
	}
}

func TestRenderMissingOptionalsAreEmpty(t *testing.T) {
	got := Render([]domain.Submission{
		{
			Name:      "Jane",
			Phone:     "123",
			CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	})

	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[1], `"Jane","","'123","","",`) {
		t.Fatalf("optionals should render empty: %s", lines[1])
	}
}

func TestFormatTimeUsesFixedOffset(t *testing.T) {
	// Midnight UTC lands on 05:30 the same day in IST regardless of
	// the host zone.
	got := FormatTime(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if got != "2024-06-01 05:30:00" {
		t.Fatalf("unexpected IST rendering: %s", got)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := Filename(now); got != "form_submissions_2024-03-10.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
}
