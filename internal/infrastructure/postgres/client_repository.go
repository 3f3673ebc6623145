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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el adaptador.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, name, company, address, country, city, zip_code, phone_number, email, unique_business_id, created_at, updated_at`

// Create persiste un nuevo cliente. unique_business_id y email tienen índice único.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Company), client.Address, client.Country,
		client.City, client.ZipCode, client.PhoneNumber, nullIfEmpty(client.Email),
		client.UniqueBusinessID, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateClientError(err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// FindByBusinessID obtiene un cliente por su identificador de negocio (nil si no existe).
func (r *ClientRepo) FindByBusinessID(businessID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE unique_business_id = $1`
	row := r.pool.QueryRow(context.Background(), query, businessID)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by business_id: %w", err)
	}
	return client, nil
}

// FindAll lista todos los clientes ordenados por nombre.
func (r *ClientRepo) FindAll() ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, client)
	}
	return list, rows.Err()
}

// Save actualiza todos los campos mutables del cliente.
func (r *ClientRepo) Save(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, company = $3, address = $4, country = $5, city = $6,
		    zip_code = $7, phone_number = $8, email = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Company), client.Address, client.Country,
		client.City, client.ZipCode, client.PhoneNumber, nullIfEmpty(client.Email), client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateClientError(err)
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// DeleteByBusinessID elimina un cliente. Las facturas no se tocan (referencia no propietaria).
func (r *ClientRepo) DeleteByBusinessID(businessID string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM clients WHERE unique_business_id = $1`, businessID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// duplicateClientError traduce una violación 23505 al campo en conflicto según
// el constraint reportado por el servidor.
func duplicateClientError(err error) error {
	if constraintName(err) == "clients_email_key" {
		return fmt.Errorf("%w: email ya registrado", domain.ErrDuplicate)
	}
	return fmt.Errorf("%w: businessId ya registrado", domain.ErrDuplicate)
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var company, email *string
	err := row.Scan(
		&c.ID, &c.Name, &company, &c.Address, &c.Country, &c.City,
		&c.ZipCode, &c.PhoneNumber, &email, &c.UniqueBusinessID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if company != nil {
		c.Company = *company
	}
	if email != nil {
		c.Email = *email
	}
	return &c, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
