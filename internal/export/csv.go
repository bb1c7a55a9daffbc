// Package export renders submissions as CSV for spreadsheet download.
package export

import (
	"strings"
	"time"

	"github.com/formbridge/formbridge/internal/submission/domain"
)

// IST is the fixed rendering zone for submission timestamps. Rendering
// must not depend on the server's local zone.
var IST = time.FixedZone("IST", 5*3600+30*60)

const (
	header     = `Name,Email,Phone,Company,Message,Created At`
	timeLayout = "2006-01-02 15:04:05"
)

// FormatTime renders a timestamp in IST.
func FormatTime(t time.Time) string {
	return t.In(IST).Format(timeLayout)
}

// Render produces the CSV payload. Every field is double-quoted; phone
// and the rendered date carry a leading single-quote marker so
// spreadsheet consumers keep them as literal text instead of dropping
// the + or re-localizing the date.
func Render(rows []domain.Submission) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}

		phone := row.Phone
		if phone != "" {
			phone = "'" + phone
		}
		created := ""
		if !row.CreatedAt.IsZero() {
			created = "'" + FormatTime(row.CreatedAt)
		}

		writeField(&b, row.Name)
		b.WriteByte(',')
		writeField(&b, row.Email)
		b.WriteByte(',')
		writeField(&b, phone)
		b.WriteByte(',')
		writeField(&b, row.Company)
		b.WriteByte(',')
		writeField(&b, row.Message)
		b.WriteByte(',')
		writeField(&b, created)
	}

	return b.String()
}

// Filename yields the attachment name for an export started at now.
func Filename(now time.Time) string {
	return "form_submissions_" + now.UTC().Format("2006-01-02") + ".csv"
}

func writeField(b *strings.Builder, value string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(value, `"`, `""`))
	b.WriteByte('"')
}
