package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
)

// SMTPConfig holds the settings for SMTP delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address. When Username is an email address the two
	// are usually identical.
	From string

	// To is the single recipient of the digest.
	To string

	// Timeout bounds the whole dial-auth-send exchange. Zero means 30s.
	Timeout time.Duration
}

// Validate reports the first missing required field.
func (c SMTPConfig) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("smtp host is required")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("smtp port %d out of range", c.Port)
	case c.From == "":
		return fmt.Errorf("sender address is required")
	case c.To == "":
		return fmt.Errorf("recipient address is required")
	}
	return nil
}

// SMTPMailer delivers digests over SMTP with implicit TLS, the transport
// Gmail exposes on port 465.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer validates cfg and returns a ready mailer. No connection is
// made until Deliver.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("smtp mailer: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Deliver composes the message and sends it in one dial-and-send exchange.
// Any failure, from composition through SMTP handoff, wraps
// entity.ErrDeliveryFailed so callers can treat delivery as fatal without
// inspecting transport details.
func (m *SMTPMailer) Deliver(ctx context.Context, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("%w: set sender: %w", entity.ErrDeliveryFailed, err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("%w: set recipient: %w", entity.ErrDeliveryFailed, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("%w: create smtp client: %w", entity.ErrDeliveryFailed, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: send via %s:%d: %w", entity.ErrDeliveryFailed, m.cfg.Host, m.cfg.Port, err)
	}

	slog.Info("digest delivered",
		slog.String("recipient", m.cfg.To),
		slog.Int("body_bytes", len(htmlBody)))
	return nil
}
