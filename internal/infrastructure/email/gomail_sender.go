// Package email implementa el envío de facturas por correo vía SMTP.
package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/oltiademi/hatom-invoice-task/pkg/config"
)

// GomailSender implementa billing.InvoiceEmailSender usando gomail sobre SMTP.
type GomailSender struct {
	cfg config.SMTPConfig
}

// NewGomailSender construye el sender con la configuración SMTP dada.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendInvoice envía el PDF adjunto al destinatario indicado. El envío respeta
// la cancelación del contexto: si ctx vence antes de completar el diálogo
// SMTP, devuelve ctx.Err() y el intento en curso queda abandonado.
func (s *GomailSender) SendInvoice(ctx context.Context, to, attachmentPath, filename string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Invoice")
	m.SetBody("text/plain", "Attached below you can find your invoice.")
	m.Attach(attachmentPath, gomail.Rename(filename))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("email: envío de factura a %s: %w", to, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("email: envío de factura a %s: %w", to, err)
		}
		return nil
	}
}
