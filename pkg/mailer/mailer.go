package mailer

import (
	"errors"

	"gopkg.in/gomail.v2"

	"go-skystore/internal/config"
)

// ErrSenderNotConfigured is returned when MAIL_SENDER is unset. Notification
// sends fail loudly rather than silently dropping mail.
var ErrSenderNotConfigured = errors.New("outbound mail sender address is not configured")

// Mailer sends notification emails
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg config.MailConfig
}

// NewSMTP creates a Mailer backed by the configured SMTP server
func NewSMTP(cfg config.MailConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	if m.cfg.Sender == "" {
		return ErrSenderNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
