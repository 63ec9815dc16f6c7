// Package email renders and delivers transactional mail. Retry policy lives
// in the queue worker, not here: senders make exactly one delivery attempt
// and report the transport result.
package email

import "context"

// CancellationData carries the fields rendered into the cancellation
// template. Values are snapshots captured at enqueue time, never live
// records.
type CancellationData struct {
	ProviderName string
	UserName     string
	Date         string
}

// Sender delivers rendered mail through a transport.
type Sender interface {
	// SendCancellationEmail notifies a provider that an appointment was
	// canceled by the requester.
	SendCancellationEmail(ctx context.Context, toName, toEmail string, data CancellationData) error
}
