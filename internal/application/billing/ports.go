package billing

import (
	"context"

	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
)

// InvoicePDFRenderer genera la representación gráfica de una factura y la
// escribe en disco. Devuelve la ruta del archivo generado, derivada del
// número de factura saneado (separadores de ruta reemplazados).
type InvoicePDFRenderer interface {
	Render(ctx context.Context, invoice *entity.Invoice, client *entity.Client) (pdfPath string, err error)
}

// InvoiceEmailSender envía la factura en PDF como adjunto. La implementación
// debe respetar la cancelación del contexto: SMTP es un sistema externo y el
// envío está acotado por timeout (ver config.SMTPConfig.SendTimeout).
type InvoiceEmailSender interface {
	SendInvoice(ctx context.Context, to, attachmentPath, filename string) error
}
