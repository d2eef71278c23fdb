package utils

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrMailNotConfigured is returned by the mailer when SMTP settings are absent
var ErrMailNotConfigured = errors.New("email not configured")

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether enough settings are present to send mail
func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// Mailer sends HTML mail
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay using gomail
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

type disabledMailer struct{}

func (disabledMailer) Send(to, subject, body string) error {
	return ErrMailNotConfigured
}

// NewMailer returns an SMTP mailer, or one that always fails with
// ErrMailNotConfigured when the configuration is incomplete.
func NewMailer(config EmailConfig) Mailer {
	if !config.Configured() {
		return disabledMailer{}
	}
	port := config.Port
	if port == 0 {
		port = DefaultSMTPPort
	}
	from := config.From
	if from == "" {
		from = config.Username
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(config.Host, port, config.Username, config.Password),
	}
}

// Send sends an HTML email
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
