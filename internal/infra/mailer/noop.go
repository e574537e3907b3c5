package mailer

import (
	"context"
	"log/slog"
)

// NoopMailer skips delivery and only logs what would have been sent. Used
// for dry runs and local development where no SMTP credentials exist.
type NoopMailer struct{}

// NewNoopMailer creates a mailer that never sends anything.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Deliver logs the message metadata and succeeds.
func (n *NoopMailer) Deliver(_ context.Context, subject, htmlBody string) error {
	slog.Info("dry run, skipping delivery",
		slog.String("subject", subject),
		slog.Int("body_bytes", len(htmlBody)))
	return nil
}
