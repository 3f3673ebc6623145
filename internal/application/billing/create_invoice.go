package billing

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/invoicing"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase implementa el workflow de creación de facturas y las
// operaciones CRUD alrededor (ver invoice_usecase.go).
//
// Secuencia de creación: resolver cliente -> resolver servicios (secuencial,
// en orden) -> calcular totales -> asignar número -> ensamblar -> generar
// PDF -> enviar email (si el cliente tiene) -> persistir. Cualquier fallo
// aborta los pasos restantes; no hay retry ni rollback de efectos ya
// ejecutados (un PDF huérfano es posible si falla el email o la persistencia).
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
	pdfRenderer InvoicePDFRenderer
	emailSender InvoiceEmailSender

	prefix       string
	emailTimeout time.Duration

	// mu serializa asignación de número + persistencia dentro del proceso:
	// sin esto, dos creaciones concurrentes leen el mismo "último número".
	// Entre procesos el respaldo sigue siendo el índice único de invoice_number.
	mu sync.Mutex
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	pdfRenderer InvoicePDFRenderer,
	emailSender InvoiceEmailSender,
	prefix string,
	emailTimeout time.Duration,
) *InvoiceUseCase {
	if emailTimeout <= 0 {
		emailTimeout = 15 * time.Second
	}
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		serviceRepo:  serviceRepo,
		pdfRenderer:  pdfRenderer,
		emailSender:  emailSender,
		prefix:       prefix,
		emailTimeout: emailTimeout,
	}
}

// CreateInvoice ejecuta el workflow completo de creación.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	issueDate, dueDate, err := parseInvoiceDates(in.IssueDate, in.DueDate)
	if err != nil {
		return nil, err
	}
	if len(in.Services) == 0 {
		return nil, fmt.Errorf("%w: la factura requiere al menos un servicio", domain.ErrInvalidInput)
	}
	if in.VAT.IsNegative() || in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: vat y discount no pueden ser negativos", domain.ErrInvalidInput)
	}
	for _, s := range in.Services {
		if s.ServiceName == "" || !s.Quantity.GreaterThan(decimal.Zero) || s.ServicePrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea de servicio inválida (%q)", domain.ErrInvalidInput, s.ServiceName)
		}
	}

	// 1) Resolver cliente: el registro existente nunca se sobrescribe con el
	// payload; solo se crea si el businessId no existe todavía.
	client, err := uc.resolveClient(in.Client)
	if err != nil {
		return nil, err
	}

	// 2) Resolver servicios línea por línea, estrictamente en orden. El precio
	// almacenado en el catálogo gana sobre el enviado; el snapshot de la línea
	// toma nombre y precio del catálogo.
	lines := make([]entity.InvoiceLine, 0, len(in.Services))
	for _, s := range in.Services {
		svc, err := uc.resolveService(s.ServiceName, s.ServicePrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.InvoiceLine{
			ID:           uuid.New().String(),
			ServiceID:    svc.ID,
			ServiceName:  svc.ServiceName,
			ServicePrice: svc.ServicePrice,
			Quantity:     s.Quantity,
			TotalAmount:  invoicing.LineTotal(s.Quantity, svc.ServicePrice),
		})
	}

	// 3) Totales (solo el total final se redondea).
	calcLines := make([]invoicing.Line, len(lines))
	for i, l := range lines {
		calcLines[i] = invoicing.Line{Quantity: l.Quantity, UnitPrice: l.ServicePrice}
	}
	_, _, total := invoicing.Totals(calcLines, in.VAT, in.Discount)

	// 4..8) Número, ensamblado, PDF, email y persistencia bajo el mutex: el
	// número asignado solo queda "tomado" cuando la factura se persiste, así
	// que la sección crítica cubre hasta el INSERT. El envío de email está
	// acotado por timeout, la sección crítica también.
	uc.mu.Lock()
	defer uc.mu.Unlock()

	invoiceNumber, err := uc.allocateNumber(issueDate.Year())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: invoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		ClientID:      client.ID,
		Lines:         lines,
		VAT:           in.VAT,
		Discount:      in.Discount,
		TotalAmount:   total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
	}

	pdfPath, err := uc.pdfRenderer.Render(ctx, inv, client)
	if err != nil {
		return nil, fmt.Errorf("%w: generar PDF: %v", domain.ErrDeliveryFailure, err)
	}

	if client.Email != "" {
		sendCtx, cancel := context.WithTimeout(ctx, uc.emailTimeout)
		err := uc.emailSender.SendInvoice(sendCtx, client.Email, pdfPath, filepath.Base(pdfPath))
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: enviar email: %v", domain.ErrDeliveryFailure, err)
		}
	}

	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, client), nil
}

// resolveClient busca por businessId y devuelve el registro almacenado tal
// cual; si no existe, valida el payload y crea el cliente completo.
func (uc *InvoiceUseCase) resolveClient(in dto.ClientPayload) (*entity.Client, error) {
	if in.UniqueBusinessID == "" {
		return nil, fmt.Errorf("%w: uniqueBusinessId requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.clientRepo.FindByBusinessID(in.UniqueBusinessID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := ValidateClientPayload(in); err != nil {
		return nil, err
	}
	now := time.Now()
	client := &entity.Client{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Company:          in.Company,
		Address:          in.Address,
		Country:          in.Country,
		City:             in.City,
		ZipCode:          in.ZipCode,
		PhoneNumber:      in.PhoneNumber,
		Email:            in.Email,
		UniqueBusinessID: in.UniqueBusinessID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// resolveService busca por nombre exacto (ante duplicados gana la entrada más
// antigua) y crea la entrada con el precio enviado solo si no existe.
func (uc *InvoiceUseCase) resolveService(name string, price decimal.Decimal) (*entity.Service, error) {
	matches, err := uc.serviceRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}
	now := time.Now()
	svc := &entity.Service{
		ID:           uuid.New().String(),
		ServiceName:  name,
		ServicePrice: price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.serviceRepo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// allocateNumber calcula el siguiente número del año: última secuencia + 1, o
// 1 si el año no tiene facturas. Las secuencias no se reciclan: se consulta la
// última factura emitida, no la cantidad de facturas existentes.
func (uc *InvoiceUseCase) allocateNumber(year int) (string, error) {
	last, err := uc.invoiceRepo.FindLastForYear(year)
	if err != nil {
		return "", err
	}
	next := 1
	if last != nil {
		lastSeq, err := invoicing.SequenceOf(last.InvoiceNumber)
		if err != nil {
			return "", err
		}
		next = lastSeq + 1
	}
	return invoicing.FormatNumber(uc.prefix, year, next), nil
}

func parseInvoiceDates(issue, due string) (issueDate, dueDate time.Time, err error) {
	issueDate, err = time.Parse(dateLayout, issue)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: issueDate %q", domain.ErrInvalidInput, issue)
	}
	dueDate, err = time.Parse(dateLayout, due)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dueDate %q", domain.ErrInvalidInput, due)
	}
	return issueDate, dueDate, nil
}

func toInvoiceResponse(inv *entity.Invoice, client *entity.Client) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		IssueDate:          inv.IssueDate.Format(dateLayout),
		DueDate:            inv.DueDate.Format(dateLayout),
		ClientID:           inv.ClientID,
		VAT:                inv.VAT,
		Discount:           inv.Discount,
		TotalInvoiceAmount: inv.TotalAmount.StringFixed(2),
		InvoiceServices:    make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	if client != nil {
		resp.Client = toClientResponse(client)
	}
	for _, l := range inv.Lines {
		resp.InvoiceServices = append(resp.InvoiceServices, dto.InvoiceLineResponse{
			ServiceGeneralID: l.ServiceID,
			ServiceName:      l.ServiceName,
			Quantity:         l.Quantity,
			ServicePrice:     l.ServicePrice,
			TotalAmount:      l.TotalAmount,
		})
	}
	return resp
}
