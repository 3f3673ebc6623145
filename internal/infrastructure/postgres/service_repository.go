package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL.
type ServiceRepo struct {
	pool *pgxpool.Pool
}

// NewServiceRepository construye el adaptador.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{pool: pool}
}

// Create persiste una entrada del catálogo.
func (r *ServiceRepo) Create(service *entity.Service) error {
	query := `
		INSERT INTO services (id, service_name, service_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		service.ID, service.ServiceName, service.ServicePrice, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// FindByName obtiene las entradas con ese nombre exacto. El ORDER BY hace
// explícita la regla de desempate: la entrada creada primero gana.
func (r *ServiceRepo) FindByName(name string) ([]*entity.Service, error) {
	query := `
		SELECT id, service_name, service_price, created_at, updated_at
		FROM services WHERE service_name = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(context.Background(), query, name)
	if err != nil {
		return nil, fmt.Errorf("find services by name: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.ServiceName, &s.ServicePrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// FindByID obtiene una entrada por ID (nil si no existe).
func (r *ServiceRepo) FindByID(id string) (*entity.Service, error) {
	query := `
		SELECT id, service_name, service_price, created_at, updated_at
		FROM services WHERE id = $1`
	var s entity.Service
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ServiceName, &s.ServicePrice, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// FindAll lista el catálogo completo ordenado por fecha de creación.
func (r *ServiceRepo) FindAll() ([]*entity.Service, error) {
	query := `
		SELECT id, service_name, service_price, created_at, updated_at
		FROM services ORDER BY created_at ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.ServiceName, &s.ServicePrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Save actualiza nombre y precio de la entrada.
func (r *ServiceRepo) Save(service *entity.Service) error {
	query := `
		UPDATE services SET service_name = $2, service_price = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		service.ID, service.ServiceName, service.ServicePrice, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// DeleteByID elimina una entrada del catálogo.
func (r *ServiceRepo) DeleteByID(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
