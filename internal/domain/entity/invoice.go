package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura más sus líneas embebidas.
// InvoiceNumber tiene formato PREFIX/YYYY/NNN y es único; la secuencia es
// anual y nunca se recicla al borrar facturas.
type Invoice struct {
	ID            string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	ClientID      string
	Lines         []InvoiceLine
	VAT           decimal.Decimal // porcentaje
	Discount      decimal.Decimal // monto fijo, puede ser cero
	TotalAmount   decimal.Decimal // round2(subtotal + iva - descuento)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceLine es una línea de factura. ServiceName y ServicePrice son un
// snapshot del catálogo al momento de crear la factura: cambios posteriores
// al servicio no alteran facturas ya emitidas.
type InvoiceLine struct {
	ID           string
	InvoiceID    string
	ServiceID    string
	ServiceName  string
	ServicePrice decimal.Decimal
	Quantity     decimal.Decimal
	TotalAmount  decimal.Decimal // Quantity * ServicePrice
}
