package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends a plain-text email. The SMTP implementation is the only
// real one; tests substitute stubs.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type SMTPMailer struct {
	Server   string
	Port     int
	Sender   string
	Password string
}

func NewSMTPMailer(server string, port int, sender, password string) *SMTPMailer {
	return &SMTPMailer{Server: server, Port: port, Sender: sender, Password: password}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if m.Server == "" || m.Sender == "" {
		return errors.New("smtp is not configured")
	}

	msg := strings.Join([]string{
		"From: " + m.Sender,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.Server, m.Port)
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Server)
	if err := smtp.SendMail(addr, auth, m.Sender, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
