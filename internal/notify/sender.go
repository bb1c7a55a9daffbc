// Package notify delivers submission notifications through a
// prioritized chain of text-message providers.
package notify

import "context"

// Sender delivers one text message to one phone number. Implementations
// are constructed only when their full credential set is configured.
type Sender interface {
	Name() string
	Send(ctx context.Context, to, body string) error
}
