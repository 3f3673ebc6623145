package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
// Cabecera en invoices, líneas en invoice_lines; Create inserta ambas en una
// transacción para que la factura nunca quede a medias.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create persiste cabecera y líneas. El índice único de invoice_number es el
// respaldo contra asignaciones concurrentes del mismo número: el segundo
// escritor recibe ErrDuplicateInvoiceNumber.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (id, invoice_number, issue_date, due_date, client_id, vat, discount, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		invoice.ID, invoice.InvoiceNumber, invoice.IssueDate, invoice.DueDate, invoice.ClientID,
		invoice.VAT, invoice.Discount, invoice.TotalAmount, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateInvoiceNumber, invoice.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i, line := range invoice.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, service_id, service_name, service_price, quantity, total_amount, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID, line.InvoiceID, line.ServiceID, line.ServiceName,
			line.ServicePrice, line.Quantity, line.TotalAmount, i,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit invoice: %w", err)
	}
	return nil
}

const invoiceColumns = `id, invoice_number, issue_date, due_date, client_id, vat, discount, total_amount, created_at, updated_at`

// FindAll lista todas las facturas con sus líneas, más reciente primero.
func (r *InvoiceRepo) FindAll() ([]*entity.Invoice, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		if err := r.loadLines(ctx, inv); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// FindByNumber obtiene una factura completa por número (nil si no existe).
func (r *InvoiceRepo) FindByNumber(invoiceNumber string) (*entity.Invoice, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, invoiceNumber)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.loadLines(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// FindLastForYear devuelve la factura con la mayor secuencia del año. La
// secuencia se ordena numéricamente sobre el tercer segmento: el orden
// lexicográfico se rompería en la factura 1000 (HA/2025/999 > HA/2025/1000).
func (r *InvoiceRepo) FindLastForYear(year int) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE split_part(invoice_number, '/', 2) = $1
		ORDER BY split_part(invoice_number, '/', 3)::int DESC
		LIMIT 1`
	row := r.pool.QueryRow(ctx, query, fmt.Sprintf("%d", year))
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last invoice for year: %w", err)
	}
	return inv, nil
}

// Save actualiza los campos de cabecera (las líneas no son direccionables).
func (r *InvoiceRepo) Save(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET issue_date = $2, due_date = $3, vat = $4, discount = $5, total_amount = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		invoice.ID, invoice.IssueDate, invoice.DueDate, invoice.VAT, invoice.Discount,
		invoice.TotalAmount, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteByNumber elimina la factura y sus líneas (ON DELETE CASCADE).
func (r *InvoiceRepo) DeleteByNumber(invoiceNumber string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM invoices WHERE invoice_number = $1`, invoiceNumber)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) loadLines(ctx context.Context, inv *entity.Invoice) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, service_id, service_name, service_price, quantity, total_amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`, inv.ID)
	if err != nil {
		return fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ServiceID, &l.ServiceName, &l.ServicePrice, &l.Quantity, &l.TotalAmount); err != nil {
			return fmt.Errorf("scan invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.ClientID,
		&inv.VAT, &inv.Discount, &inv.TotalAmount, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
