// Package mailer delivers the rendered digest document. Delivery is the
// last pipeline stage and, unlike source fetching, its failure is fatal to
// the run.
package mailer

import "context"

// Mailer sends a rendered digest to its recipient.
//
// Implementations must respect ctx cancellation and return an error that
// wraps entity.ErrDeliveryFailed when the message could not be handed off.
type Mailer interface {
	// Deliver sends htmlBody as an HTML email with the given subject.
	Deliver(ctx context.Context, subject, htmlBody string) error
}
