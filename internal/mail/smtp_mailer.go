package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	apperrors "github.com/allisson/licenses/internal/errors"
)

// SMTPMailer sends email through a plain SMTP relay.
type SMTPMailer struct {
	addr     string
	username string
	password string
	host     string
	from     string

	// sendMail is swapped out in tests to capture the outgoing message.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer backed by an SMTP relay. When username is
// empty the relay is assumed to accept unauthenticated mail.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		addr:     net.JoinHostPort(host, port),
		username: username,
		password: password,
		host:     host,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

// Send delivers one HTML email to a single recipient. net/smtp carries no
// context, so only an already-expired context short-circuits the dial.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(err, "smtp send aborted")
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
		"\r\n"+
		"%s\r\n", m.from, to, subject, htmlBody))

	if err := m.sendMail(m.addr, auth, m.from, []string{to}, msg); err != nil {
		return apperrors.Wrap(err, "failed to send email via smtp")
	}
	return nil
}
