package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"reviewhub/internal/config"
)

// Sender delivers signup confirmation codes.
type Sender interface {
	SendConfirmationCode(email, code string) error
}

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	enabled  bool
	logger   *slog.Logger
}

func NewSMTPSender(cfg *config.Config, logger *slog.Logger) *SMTPSender {
	enabled := cfg.MailEnabled()
	if !enabled {
		logger.Warn("mail delivery disabled: missing SMTP configuration")
	}
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.SMTPFrom,
		enabled:  enabled,
		logger:   logger,
	}
}

// SendConfirmationCode mails the code to the given address. Delivery happens
// within the request; a disabled sender logs the code instead so local
// development keeps working end to end.
func (s *SMTPSender) SendConfirmationCode(email, code string) error {
	if !s.enabled {
		s.logger.Info("mail disabled, confirmation code not sent", "email", email)
		return nil
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: Registration confirmation\r\n"+
		"\r\n"+
		"Confirmation code: %s\r\n", email, s.from, code))

	if err := smtp.SendMail(addr, auth, s.from, []string{email}, msg); err != nil {
		s.logger.Error("failed to send confirmation email", "email", email, "error", err)
		return err
	}

	s.logger.Info("confirmation email sent", "email", email)
	return nil
}
