package billing_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltiademi/hatom-invoice-task/internal/application/billing"
	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/invoicing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	byBusinessID map[string]*entity.Client
	createCalls  int
	saveCalls    int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byBusinessID: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.createCalls++
	r.byBusinessID[c.UniqueBusinessID] = c
	return nil
}

func (r *fakeClientRepo) FindByBusinessID(businessID string) (*entity.Client, error) {
	return r.byBusinessID[businessID], nil
}

func (r *fakeClientRepo) FindAll() ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.byBusinessID))
	for _, c := range r.byBusinessID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Save(c *entity.Client) error {
	r.saveCalls++
	r.byBusinessID[c.UniqueBusinessID] = c
	return nil
}

func (r *fakeClientRepo) DeleteByBusinessID(businessID string) error {
	delete(r.byBusinessID, businessID)
	return nil
}

type fakeServiceRepo struct {
	services    []*entity.Service
	createCalls int
}

func (r *fakeServiceRepo) Create(s *entity.Service) error {
	r.createCalls++
	r.services = append(r.services, s)
	return nil
}

// FindByName respeta el contrato del puerto: coincidencias por nombre exacto
// ordenadas por fecha de creación ascendente.
func (r *fakeServiceRepo) FindByName(name string) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range r.services {
		if s.ServiceName == name {
			out = append(out, s)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.Before(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByID(id string) (*entity.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) FindAll() ([]*entity.Service, error) { return r.services, nil }
func (r *fakeServiceRepo) Save(*entity.Service) error          { return nil }
func (r *fakeServiceRepo) DeleteByID(string) error             { return nil }

type fakeInvoiceRepo struct {
	stored      []*entity.Invoice
	createErr   error
	createCalls int
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.stored = append(r.stored, inv)
	return nil
}

func (r *fakeInvoiceRepo) FindAll() ([]*entity.Invoice, error) { return r.stored, nil }

func (r *fakeInvoiceRepo) FindByNumber(number string) (*entity.Invoice, error) {
	for _, inv := range r.stored {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, nil
}

// FindLastForYear devuelve la factura con mayor secuencia del año, como hace
// el repositorio real con split_part sobre invoice_number.
func (r *fakeInvoiceRepo) FindLastForYear(year int) (*entity.Invoice, error) {
	var best *entity.Invoice
	bestSeq := 0
	for _, inv := range r.stored {
		parts := strings.Split(inv.InvoiceNumber, "/")
		if len(parts) != 3 || parts[1] != strconv.Itoa(year) {
			continue
		}
		seq, err := invoicing.SequenceOf(inv.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		if seq > bestSeq {
			best, bestSeq = inv, seq
		}
	}
	return best, nil
}

func (r *fakeInvoiceRepo) Save(*entity.Invoice) error  { return nil }
func (r *fakeInvoiceRepo) DeleteByNumber(string) error { return nil }

type fakePDFRenderer struct {
	calls int
	fail  bool
}

func (p *fakePDFRenderer) Render(_ context.Context, inv *entity.Invoice, _ *entity.Client) (string, error) {
	p.calls++
	if p.fail {
		return "", errors.New("sin espacio en disco")
	}
	return "pdfFiles/" + invoicing.SanitizeNumber(inv.InvoiceNumber) + ".pdf", nil
}

type fakeEmailSender struct {
	calls    int
	lastTo   string
	lastFile string
	fail     bool
}

func (s *fakeEmailSender) SendInvoice(_ context.Context, to, _, filename string) error {
	s.calls++
	s.lastTo = to
	s.lastFile = filename
	if s.fail {
		return errors.New("smtp rechazado")
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *billing.InvoiceUseCase
	clients  *fakeClientRepo
	services *fakeServiceRepo
	invoices *fakeInvoiceRepo
	pdf      *fakePDFRenderer
	email    *fakeEmailSender
}

func newFixture() *fixture {
	f := &fixture{
		clients:  newFakeClientRepo(),
		services: &fakeServiceRepo{},
		invoices: &fakeInvoiceRepo{},
		pdf:      &fakePDFRenderer{},
		email:    &fakeEmailSender{},
	}
	f.uc = billing.NewInvoiceUseCase(
		f.invoices, f.clients, f.services, f.pdf, f.email, "HA", time.Second,
	)
	return f
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func clientPayload() dto.ClientPayload {
	return dto.ClientPayload{
		Name:             "Arta Berisha",
		Company:          "Berisha Consulting",
		Address:          "Rr. Garibaldi 21",
		Country:          "Kosovo",
		City:             "Prishtina",
		ZipCode:          "10000",
		PhoneNumber:      "+38344123456",
		Email:            "arta@berisha.example",
		UniqueBusinessID: "811234567",
	}
}

func baseRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		IssueDate: "2026-03-15",
		DueDate:   "2026-04-14",
		Client:    clientPayload(),
		Services: []dto.InvoiceServiceRequest{
			{ServiceName: "Desarrollo web", Quantity: dec("1"), ServicePrice: dec("600")},
			{ServiceName: "Diseño UX", Quantity: dec("1"), ServicePrice: dec("600")},
			{ServiceName: "Consultoría", Quantity: dec("1"), ServicePrice: dec("600")},
		},
		VAT:      dec("20"),
		Discount: dec("10"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

// 3 servicios de 600: subtotal 1800, IVA 20% = 360, descuento 10 → 2150.00.
func TestCreateInvoice_TotalCasoBase(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "2150.00", resp.TotalInvoiceAmount)
	assert.Len(t, resp.InvoiceServices, 3)
	require.Len(t, f.invoices.stored, 1)
	assert.True(t, f.invoices.stored[0].TotalAmount.Equal(dec("2150")),
		"el total persistido debe coincidir con el de la respuesta")
}

// Un descuento mayor que subtotal+IVA produce un total negativo: se acepta.
func TestCreateInvoice_TotalNegativoSeAcepta(t *testing.T) {
	f := newFixture()
	in := baseRequest()
	in.Services = in.Services[:1] // subtotal 600
	in.VAT = dec("0")
	in.Discount = dec("700")

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "-100.00", resp.TotalInvoiceAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_PrimeraDelAnioEsUno(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "HA/2026/001", resp.InvoiceNumber)
}

func TestCreateInvoice_SecuenciaIncrementa(t *testing.T) {
	f := newFixture()

	first, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "HA/2026/001", first.InvoiceNumber)
	assert.Equal(t, "HA/2026/002", second.InvoiceNumber)
}

// La secuencia es por año de emisión: facturas de otro año no cuentan.
func TestCreateInvoice_SecuenciaAisladaPorAnio(t *testing.T) {
	f := newFixture()
	f.invoices.stored = append(f.invoices.stored, &entity.Invoice{
		ID: "prev", InvoiceNumber: "HA/2025/007",
	})

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "HA/2026/001", resp.InvoiceNumber)
}

// A partir de 1000 el número deja atrás el padding de tres dígitos.
func TestCreateInvoice_SecuenciaMilSinPadding(t *testing.T) {
	f := newFixture()
	f.invoices.stored = append(f.invoices.stored, &entity.Invoice{
		ID: "prev", InvoiceNumber: "HA/2026/999",
	})

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "HA/2026/1000", resp.InvoiceNumber)
}

// Si la persistencia detecta número duplicado (otro proceso ganó la carrera),
// el error se propaga tal cual para que el caller reintente.
func TestCreateInvoice_NumeroDuplicadoPropagaError(t *testing.T) {
	f := newFixture()
	f.invoices.createErr = domain.ErrDuplicateInvoiceNumber

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de cliente y catálogo
// ──────────────────────────────────────────────────────────────────────────────

// El payload de cliente nunca sobrescribe un registro existente con el mismo
// businessId: la factura referencia el registro tal como está almacenado.
func TestCreateInvoice_ClienteExistenteNoSeSobrescribe(t *testing.T) {
	f := newFixture()
	stored := &entity.Client{
		ID:               "client-1",
		Name:             "Nombre Original",
		Email:            "original@cliente.example",
		UniqueBusinessID: "811234567",
	}
	f.clients.byBusinessID[stored.UniqueBusinessID] = stored

	in := baseRequest()
	in.Client.Name = "Nombre Distinto"
	in.Client.Email = "otra@direccion.example"

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 0, f.clients.createCalls, "no debe crearse un cliente nuevo")
	assert.Equal(t, 0, f.clients.saveCalls, "no debe modificarse el registro existente")
	assert.Equal(t, "Nombre Original", resp.Client.Name)
	assert.Equal(t, "original@cliente.example", f.email.lastTo,
		"el email debe ir a la dirección almacenada, no a la del payload")
}

func TestCreateInvoice_ClienteNuevoSeCreaConElPayload(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.clients.createCalls)
	created := f.clients.byBusinessID["811234567"]
	require.NotNil(t, created)
	assert.Equal(t, "Arta Berisha", created.Name)
}

func TestCreateInvoice_ClienteNuevoInvalidoAborta(t *testing.T) {
	f := newFixture()
	in := baseRequest()
	in.Client.ZipCode = "99999" // fuera del rango soportado

	_, err := f.uc.CreateInvoice(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.invoices.createCalls)
}

// El precio almacenado en el catálogo gana sobre el enviado, tanto para el
// total de la línea como para el snapshot.
func TestCreateInvoice_PrecioDeCatalogoGana(t *testing.T) {
	f := newFixture()
	f.services.services = append(f.services.services, &entity.Service{
		ID: "svc-1", ServiceName: "Consultoría", ServicePrice: dec("500"),
		CreatedAt: time.Now().Add(-time.Hour),
	})

	in := baseRequest()
	in.Services = []dto.InvoiceServiceRequest{
		{ServiceName: "Consultoría", Quantity: dec("2"), ServicePrice: dec("999")},
	}
	in.VAT = dec("0")
	in.Discount = dec("0")

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 0, f.services.createCalls, "no debe duplicarse la entrada del catálogo")
	require.Len(t, resp.InvoiceServices, 1)
	line := resp.InvoiceServices[0]
	assert.Equal(t, "svc-1", line.ServiceGeneralID)
	assert.True(t, line.ServicePrice.Equal(dec("500")), "snapshot con precio de catálogo")
	assert.True(t, line.TotalAmount.Equal(dec("1000")), "total de línea con precio de catálogo")
	assert.Equal(t, "1000.00", resp.TotalInvoiceAmount)
}

// Cambiar el precio del catálogo después de emitir la factura no altera el
// snapshot: la lectura posterior devuelve el nombre y precio de emisión.
func TestCreateInvoice_SnapshotSobreviveCambioDeCatalogo(t *testing.T) {
	f := newFixture()
	f.services.services = append(f.services.services, &entity.Service{
		ID: "svc-1", ServiceName: "Consultoría", ServicePrice: dec("500"),
		CreatedAt: time.Now().Add(-time.Hour),
	})

	in := baseRequest()
	in.Services = []dto.InvoiceServiceRequest{
		{ServiceName: "Consultoría", Quantity: dec("2"), ServicePrice: dec("500")},
	}
	in.VAT = dec("0")
	in.Discount = dec("0")

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	f.services.services[0].ServiceName = "Consultoría premium"
	f.services.services[0].ServicePrice = dec("950")

	got, err := f.uc.FindInvoiceByNumber(context.Background(), resp.InvoiceNumber)
	require.NoError(t, err)
	require.Len(t, got.InvoiceServices, 1)
	line := got.InvoiceServices[0]
	assert.Equal(t, "Consultoría", line.ServiceName)
	assert.True(t, line.ServicePrice.Equal(dec("500")), "precio de emisión, no el actual")
	assert.True(t, line.TotalAmount.Equal(dec("1000")))
	assert.Equal(t, "1000.00", got.TotalInvoiceAmount)
}

// Ante nombres duplicados en el catálogo gana la entrada más antigua.
func TestCreateInvoice_CatalogoDuplicadoGanaElMasAntiguo(t *testing.T) {
	f := newFixture()
	f.services.services = append(f.services.services,
		&entity.Service{ID: "svc-new", ServiceName: "Consultoría", ServicePrice: dec("900"), CreatedAt: time.Now()},
		&entity.Service{ID: "svc-old", ServiceName: "Consultoría", ServicePrice: dec("500"), CreatedAt: time.Now().Add(-time.Hour)},
	)

	in := baseRequest()
	in.Services = []dto.InvoiceServiceRequest{
		{ServiceName: "Consultoría", Quantity: dec("1"), ServicePrice: dec("700")},
	}

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "svc-old", resp.InvoiceServices[0].ServiceGeneralID)
	assert.True(t, resp.InvoiceServices[0].ServicePrice.Equal(dec("500")))
}

func TestCreateInvoice_ServicioNuevoSeCreaConPrecioEnviado(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, f.services.createCalls)
	matches, _ := f.services.FindByName("Desarrollo web")
	require.Len(t, matches, 1)
	assert.True(t, matches[0].ServicePrice.Equal(dec("600")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega: PDF y email antes de persistir
// ──────────────────────────────────────────────────────────────────────────────

// Si falla la generación del PDF la factura no se persiste y no se envía nada.
func TestCreateInvoice_FalloPDFAbortaSinPersistir(t *testing.T) {
	f := newFixture()
	f.pdf.fail = true

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	assert.ErrorIs(t, err, domain.ErrDeliveryFailure)
	assert.Equal(t, 0, f.email.calls)
	assert.Equal(t, 0, f.invoices.createCalls)
}

// Si falla el envío del email la factura tampoco se persiste.
func TestCreateInvoice_FalloEmailAbortaSinPersistir(t *testing.T) {
	f := newFixture()
	f.email.fail = true

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	assert.ErrorIs(t, err, domain.ErrDeliveryFailure)
	assert.Equal(t, 1, f.pdf.calls)
	assert.Equal(t, 0, f.invoices.createCalls)
}

// Cliente sin email: se omite el envío y la factura se crea igual.
func TestCreateInvoice_ClienteSinEmailOmiteEnvio(t *testing.T) {
	f := newFixture()
	f.clients.byBusinessID["811234567"] = &entity.Client{
		ID: "client-1", Name: "Sin Correo", UniqueBusinessID: "811234567",
	}

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, f.email.calls)
	assert.Equal(t, 1, f.invoices.createCalls)
	assert.Equal(t, "HA/2026/001", resp.InvoiceNumber)
}

// El adjunto toma su nombre del número de factura saneado.
func TestCreateInvoice_NombreDeAdjunto(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "HA-2026-001.pdf", f.email.lastFile)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateInvoiceRequest)
	}{
		{"sin servicios", func(in *dto.CreateInvoiceRequest) { in.Services = nil }},
		{"fecha de emisión malformada", func(in *dto.CreateInvoiceRequest) { in.IssueDate = "15/03/2026" }},
		{"fecha de vencimiento malformada", func(in *dto.CreateInvoiceRequest) { in.DueDate = "mañana" }},
		{"vat negativo", func(in *dto.CreateInvoiceRequest) { in.VAT = dec("-1") }},
		{"descuento negativo", func(in *dto.CreateInvoiceRequest) { in.Discount = dec("-5") }},
		{"cantidad cero", func(in *dto.CreateInvoiceRequest) { in.Services[0].Quantity = dec("0") }},
		{"línea sin nombre", func(in *dto.CreateInvoiceRequest) { in.Services[0].ServiceName = "" }},
		{"sin businessId", func(in *dto.CreateInvoiceRequest) { in.Client.UniqueBusinessID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := baseRequest()
			tc.mutate(&in)

			_, err := f.uc.CreateInvoice(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, f.invoices.createCalls)
		})
	}
}
