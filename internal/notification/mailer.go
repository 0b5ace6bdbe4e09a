package notification

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"jobdesk/internal/config"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer picks SMTP when a host is configured and falls back to logging
// rendered mail otherwise, which keeps development environments working
// without an outbound relay.
func NewMailer(cfg config.SMTPConfig, logger *log.Logger) Mailer {
	if cfg.Host == "" {
		return &LogMailer{logger: logger}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

type LogMailer struct {
	logger *log.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	if m.logger != nil {
		m.logger.Printf("[Notify] mail (unsent, no SMTP host) to=%s subject=%q body=%q", to, subject, body)
	}
	return nil
}
