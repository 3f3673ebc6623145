package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
)

// FindAllInvoices lista todas las facturas (sin expandir el cliente).
func (uc *InvoiceUseCase) FindAllInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// FindInvoiceByNumber busca una factura por su número exacto.
func (uc *InvoiceUseCase) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.FindByNumber(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceNumber)
	}
	return toInvoiceResponse(inv, nil), nil
}

// UpdateInvoice aplica un parche de cabecera campo a campo (fechas, IVA,
// descuento). El número de factura y las líneas no se tocan; el total NO se
// recalcula (las líneas no cambian y el total almacenado es el emitido).
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, invoiceNumber string, patch dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.FindByNumber(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceNumber)
	}
	if patch.IssueDate != nil {
		d, err := time.Parse(dateLayout, *patch.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: issueDate %q", domain.ErrInvalidInput, *patch.IssueDate)
		}
		inv.IssueDate = d
	}
	if patch.DueDate != nil {
		d, err := time.Parse(dateLayout, *patch.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: dueDate %q", domain.ErrInvalidInput, *patch.DueDate)
		}
		inv.DueDate = d
	}
	if patch.VAT != nil {
		if patch.VAT.IsNegative() {
			return nil, fmt.Errorf("%w: vat negativo", domain.ErrInvalidInput)
		}
		inv.VAT = *patch.VAT
	}
	if patch.Discount != nil {
		if patch.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: discount negativo", domain.ErrInvalidInput)
		}
		inv.Discount = *patch.Discount
	}
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Save(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, nil), nil
}

// DeleteInvoiceByNumber elimina una factura. El número eliminado no se
// recicla: la asignación parte de la última factura emitida, no del conteo.
func (uc *InvoiceUseCase) DeleteInvoiceByNumber(ctx context.Context, invoiceNumber string) error {
	inv, err := uc.invoiceRepo.FindByNumber(invoiceNumber)
	if err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceNumber)
	}
	return uc.invoiceRepo.DeleteByNumber(invoiceNumber)
}
