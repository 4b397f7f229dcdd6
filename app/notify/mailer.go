package notify

import (
	"errors"
	"net/smtp"

	"github.com/taskforge/taskforge/config"
)

// Mailer sends HTML email over authenticated SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.Port == "" || m.cfg.Mail == "" || m.cfg.Password == "" {
		return errors.New("smtp not configured")
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	from := m.cfg.Mail

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", from, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
