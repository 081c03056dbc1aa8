package email

import (
	"fmt"

	"leadops_backend/platform/config"
)

// NewSender builds the configured Sender. With email disabled it returns a
// NoopSender so callers never branch on delivery being off.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetSMTPHost() == "" {
		return nil, fmt.Errorf("EMAIL_ENABLED is set but SMTP_HOST is empty")
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
