// Package mail provides the email notifier implementations. The default
// backend is the Resend API; an SMTP relay backend exists for deployments
// that cannot use it.
package mail

import (
	"fmt"

	"github.com/allisson/licenses/internal/config"
	apperrors "github.com/allisson/licenses/internal/errors"
	"github.com/allisson/licenses/internal/licenses/usecase"
)

// NewMailer creates the mailer selected by MAIL_PROVIDER.
func NewMailer(cfg *config.Config) (usecase.Mailer, error) {
	switch cfg.MailProvider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, apperrors.New("RESEND_API_KEY is required for the resend mail provider")
		}
		return NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom), nil
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPPort == "" {
			return nil, apperrors.New("SMTP_HOST and SMTP_PORT are required for the smtp mail provider")
		}
		return NewSMTPMailer(
			cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.MailFrom,
		), nil
	default:
		return nil, apperrors.New(fmt.Sprintf("unsupported mail provider: %s", cfg.MailProvider))
	}
}
