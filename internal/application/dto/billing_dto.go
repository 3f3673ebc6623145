package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices/create.
// El cliente puede existir ya (se resuelve por uniqueBusinessId) o crearse
// implícitamente con el payload completo. Fechas en formato 2006-01-02.
type CreateInvoiceRequest struct {
	IssueDate string                  `json:"issueDate"`
	DueDate   string                  `json:"dueDate"`
	Client    ClientPayload           `json:"client"`
	Services  []InvoiceServiceRequest `json:"services"`
	VAT       decimal.Decimal         `json:"vat"`
	Discount  decimal.Decimal         `json:"discount"`
}

// InvoiceServiceRequest línea solicitada: servicio por nombre, cantidad y
// precio. Si el servicio ya existe en el catálogo, el precio almacenado gana
// sobre el enviado; si no existe, se crea con este precio.
type InvoiceServiceRequest struct {
	ServiceName  string          `json:"serviceName"`
	Quantity     decimal.Decimal `json:"quantity"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
}

// UpdateInvoiceRequest parche parcial de cabecera (PATCH /api/invoices/update).
// Las líneas no son direccionables por separado y no se parchean.
type UpdateInvoiceRequest struct {
	IssueDate *string          `json:"issueDate,omitempty"`
	DueDate   *string          `json:"dueDate,omitempty"`
	VAT       *decimal.Decimal `json:"vat,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
}

// InvoiceResponse factura con sus líneas.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	InvoiceNumber      string                `json:"invoiceNumber"`
	IssueDate          string                `json:"issueDate"`
	DueDate            string                `json:"dueDate"`
	Client             *ClientResponse       `json:"client,omitempty"`
	ClientID           string                `json:"clientId"`
	InvoiceServices    []InvoiceLineResponse `json:"invoiceServices"`
	VAT                decimal.Decimal       `json:"vat"`
	Discount           decimal.Decimal       `json:"discount"`
	TotalInvoiceAmount string                `json:"totalInvoiceAmount"` // fijo a 2 decimales
}

// InvoiceLineResponse línea de factura en la respuesta (snapshot de catálogo).
type InvoiceLineResponse struct {
	ServiceGeneralID string          `json:"serviceGeneralId"`
	ServiceName      string          `json:"serviceName"`
	Quantity         decimal.Decimal `json:"quantity"`
	ServicePrice     decimal.Decimal `json:"servicePrice"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}
