package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"reviewhub/internal/config"
)

// Sender delivers confirmation codes to users. Implementations must be safe
// for concurrent use.
type Sender interface {
	SendConfirmationCode(to, username, code string) error
}

// SMTPSender sends mail through a plain-auth SMTP relay.
type SMTPSender struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.MailFrom,
	}
}

func (s *SMTPSender) SendConfirmationCode(to, username, code string) error {
	subject := "Регистрация"
	body := fmt.Sprintf("Ваш код подтверждения %s", code)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", s.from, to, subject, body)

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}

	return nil
}

// LogSender writes codes to the log instead of sending mail. Used in
// development when no SMTP relay is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendConfirmationCode(to, username, code string) error {
	s.Logger.Info("confirmation code issued",
		"email", to,
		"username", username,
		"code", code,
	)
	return nil
}
