package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"journalhub/pkg/config"
)

// Sender delivers one composed message. Exactly one attempt, no retry,
// no queueing; the caller decides what a failure means.
type Sender interface {
	Send(msg *Message) error
}

// SMTPSender delivers messages through a single SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
}

// NewSMTPSender builds a sender for the configured relay. PLAIN auth is
// used only when a username is set.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{addr: cfg.Addr(), auth: auth}
}

func (s *SMTPSender) Send(msg *Message) error {
	raw := msg.Render(NewBoundary())
	if err := smtp.SendMail(s.addr, s.auth, msg.From, msg.Recipients(), raw); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them.
// Used when no SMTP host is configured (local development).
type LogSender struct {
	Logger *log.Logger
}

func (s *LogSender) Send(msg *Message) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	att := "no attachment"
	if msg.Attachment != nil {
		att = fmt.Sprintf("attachment %s (%d bytes)", msg.Attachment.Filename, len(msg.Attachment.Content))
	}
	logger.Printf("[mailer] dry-run send to=%s subject=%q %s", msg.To, msg.Subject, att)
	return nil
}

// NewSender picks the real relay when one is configured, the log sender
// otherwise.
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return &LogSender{}
	}
	return NewSMTPSender(cfg)
}
