package mail

import (
	"context"
	"fmt"

	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/pkg/config"
	gomail "gopkg.in/gomail.v2"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos transaccionales (verificación de email, cambios de
// estado de proveedor) vía SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer crea el adaptador de correo.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML. Respeta la cancelación del contexto: gomail no
// acepta ctx, así que el envío corre en goroutine y se espera con select.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar correo: %w", err)
		}
		return nil
	}
}
