package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"medcare/config"
	"medcare/internal/domain/service"

	"github.com/pkg/errors"
)

// smtpSender implements Notifier over plain SMTP. Auth is optional so local
// catch-all servers (mailpit, mailhog) work without credentials.
type smtpSender struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger
}

// NewSMTPSender creates a new SMTP-backed notifier
func NewSMTPSender(cfg *config.MailConfig, logger *slog.Logger) service.Notifier {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &smtpSender{
		addr:   fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:   cfg.From,
		auth:   auth,
		logger: logger,
	}
}

// Send delivers the message through the configured SMTP relay.
func (s *smtpSender) Send(ctx context.Context, msg service.Message) error {
	if msg.To == "" {
		return errors.New("message recipient is required")
	}

	body := buildMIMEMessage(s.from, msg)

	s.logger.InfoContext(ctx, "[SMTP] Sending mail",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.To}, body); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}

// buildMIMEMessage renders the message headers and body. HTML content wins
// over plain text when both are set.
func buildMIMEMessage(from string, msg service.Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	body := msg.Text
	if msg.HTML != "" {
		contentType = "text/html; charset=UTF-8"
		body = msg.HTML
	}

	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + msg.To + "\r\n")
	builder.WriteString("Subject: " + msg.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: " + contentType + "\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
