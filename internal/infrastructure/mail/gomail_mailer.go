// Package mail entrega los correos del reporte por SMTP.
package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/pkg/config"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

var (
	_ report.Mailer = (*SMTPMailer)(nil)
	_ report.Mailer = (*LogMailer)(nil)
)

// sender lo que SMTPMailer usa de *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía con gomail abriendo una conexión por correo.
type SMTPMailer struct {
	from   string
	dialer sender
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send arma el mensaje MIME y lo entrega.
func (m *SMTPMailer) Send(ctx context.Context, mail report.OutgoingMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := buildMessage(m.from, mail)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// buildMessage HTML con adjuntos en memoria.
func buildMessage(from string, mail report.OutgoingMail) (*gomail.Message, error) {
	if len(mail.To) == 0 {
		return nil, fmt.Errorf("correo sin destinatarios")
	}
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", from)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.BodyHTML)
	for _, a := range mail.Attachments {
		content := a.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		msg.Attach(a.Filename, settings...)
	}
	return msg, nil
}

// LogMailer solo registra el correo en el log; se usa cuando no hay SMTP configurado.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de log.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.WithComponent("mail")}
}

// Send registra destinatarios, asunto y adjuntos.
func (m *LogMailer) Send(_ context.Context, mail report.OutgoingMail) error {
	names := make([]string, 0, len(mail.Attachments))
	for _, a := range mail.Attachments {
		names = append(names, a.Filename)
	}
	m.log.Info().
		Strs("to", mail.To).
		Str("subject", mail.Subject).
		Str("attachments", strings.Join(names, ",")).
		Msg("SMTP no configurado, correo no entregado")
	return nil
}
