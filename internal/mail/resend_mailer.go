package mail

import (
	"context"

	"github.com/resend/resend-go/v2"

	apperrors "github.com/allisson/licenses/internal/errors"
)

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a mailer backed by the Resend API.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one HTML email to a single recipient.
func (m *ResendMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return apperrors.Wrap(err, "failed to send email via resend")
	}
	return nil
}
