package repository

import "github.com/oltiademi/hatom-invoice-task/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las líneas son propiedad exclusiva de la factura: se persisten y se leen
// siempre junto con la cabecera.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas como una sola operación atómica.
	// Retorna domain.ErrDuplicateInvoiceNumber si el número ya existe.
	Create(invoice *entity.Invoice) error
	FindAll() ([]*entity.Invoice, error)
	FindByNumber(invoiceNumber string) (*entity.Invoice, error)
	// FindLastForYear devuelve la factura con la mayor secuencia numérica del
	// año, o nil si no hay facturas de ese año.
	FindLastForYear(year int) (*entity.Invoice, error)
	// Save actualiza los campos de cabecera (fechas, IVA, descuento, total).
	Save(invoice *entity.Invoice) error
	DeleteByNumber(invoiceNumber string) error
}
