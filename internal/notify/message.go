package notify

import (
	"fmt"
	"strings"

	"github.com/formbridge/formbridge/internal/export"
	"github.com/formbridge/formbridge/internal/submission/domain"
)

// formatSummary renders the fixed notification text for one submission.
// The layout matches what the admin expects on their phone; timestamps
// render in IST like the CSV export.
func formatSummary(sub domain.Submission) string {
	return strings.TrimSpace(fmt.Sprintf(`
🆕 New Form Submission

👤 Name: %s
📧 Email: %s
📱 Phone: %s
🏢 Company: %s
💬 Message: %s

🆔 Submission ID: %d
⏰ Submitted: %s
`,
		sub.Name,
		orDefault(sub.Email, "Not provided"),
		sub.Phone,
		orDefault(sub.Company, "Not provided"),
		orDefault(sub.Message, "No message"),
		sub.ID,
		export.FormatTime(sub.CreatedAt),
	))
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
