package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/skillbridge/marketplace/internal/config"
)

// Sender delivers one message to one address.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := m.host + ":" + m.port

	msg := fmt.Sprintf("From: %s\r\n", m.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"utf-8\"\r\n"
	msg += "\r\n" + body + "\r\n"

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender stands in when no SMTP host is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(to, subject, _ string) error {
	s.log.Info("mail (not configured, logged only)", "to", to, "subject", subject)
	return nil
}
