package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"chronotask/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer delivers account lifecycle emails. Implementations own their
// transport timeouts; callers treat any returned error as delivery failure.
type Mailer interface {
	SendConfirmation(user *model.User, url string) error
	SendPasswordReset(user *model.User, url string) error
}

// SMTPMailer sends templated HTML mail over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	tmpl   *template.Template
}

// NewSMTPMailer creates a mailer for the given SMTP endpoint.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		tmpl:   tmpl,
	}, nil
}

// SendConfirmation mails the email confirmation link.
func (m *SMTPMailer) SendConfirmation(user *model.User, url string) error {
	return m.send(user, url, "confirm.html", "Confirm your email (valid for a limited time)")
}

// SendPasswordReset mails the password reset link. The link embeds the
// plaintext reset token, shown to the user only here.
func (m *SMTPMailer) SendPasswordReset(user *model.User, url string) error {
	return m.send(user, url, "password_reset.html", "Reset your password (valid for 10 minutes)")
}

func (m *SMTPMailer) send(user *model.User, url, templateName, subject string) error {
	var body bytes.Buffer
	err := m.tmpl.ExecuteTemplate(&body, templateName, map[string]string{
		"FirstName": firstName(user.Name),
		"URL":       url,
		"Subject":   subject,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", user.Email, err)
	}
	return nil
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
