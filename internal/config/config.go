// Package config loads the digest's credentials and section plan. Both are
// loaded once before the pipeline runs and treated as immutable input.
// Missing credentials are fatal: the run aborts before any fetch begins.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	pkgconfig "github.com/coreyely1-blip/daily-news-digest-v2/pkg/config"
)

// Config holds provider credentials and delivery settings.
type Config struct {
	// NewsAPIKey authenticates NewsAPI searches. Required.
	NewsAPIKey string

	// SMTPHost is the mail relay host. Default: smtp.gmail.com
	SMTPHost string

	// SMTPPort is the mail relay port. Default: 465 (implicit TLS)
	SMTPPort int

	// SenderEmail is the From address and SMTP username. Required.
	SenderEmail string

	// SenderPassword is the SMTP password. Required.
	SenderPassword string

	// RecipientEmail is the single digest recipient. Required.
	RecipientEmail string
}

// Load reads the configuration from environment variables.
//
// Required: NEWS_API_KEY, SENDER_EMAIL, SENDER_PASSWORD, RECIPIENT_EMAIL.
// Optional: SMTP_HOST, SMTP_PORT.
//
// Returns an error wrapping entity.ErrMissingConfig naming every absent
// required variable, so the operator can fix them all in one pass.
func Load() (*Config, error) {
	cfg := &Config{
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),
		SMTPHost:       pkgconfig.GetEnvString("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       pkgconfig.GetEnvInt("SMTP_PORT", 465),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		SenderPassword: os.Getenv("SENDER_PASSWORD"),
		RecipientEmail: os.Getenv("RECIPIENT_EMAIL"),
	}

	var missing []string
	if cfg.NewsAPIKey == "" {
		missing = append(missing, "NEWS_API_KEY")
	}
	if cfg.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if cfg.SenderPassword == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if cfg.RecipientEmail == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingConfig, strings.Join(missing, ", "))
	}

	return cfg, nil
}
