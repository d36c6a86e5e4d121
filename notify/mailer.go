package notify

import (
	"fmt"
	"net/smtp"

	"github.com/mounirtms/showcase/configuration"
)

// Mailer relays contact-form submissions over SMTP. A nil *Mailer means
// store-only mode.
type Mailer struct {
	host string
	port string
	user string
	pass string
	to   string
}

// NewMailer returns nil when the config has no host or user, so callers can
// treat "not configured" and "disabled" the same way.
func NewMailer(c configuration.Smtp) *Mailer {
	if c.Host == "" || c.User == "" {
		return nil
	}

	to := c.To
	if to == "" {
		to = c.User
	}

	return &Mailer{
		host: c.Host,
		port: c.Port,
		user: c.User,
		pass: c.Pass,
		to:   to,
	}
}

func (m *Mailer) SendContact(name, email, message string) error {

	subject := fmt.Sprintf("Portfolio contact: %s", name)
	body := fmt.Sprintf("New contact form submission:\n\nName: %s\nEmail: %s\nMessage:\n%s\n", name, email, message)

	msg := []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	err := smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{m.to}, msg)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
