package repository

import "github.com/oltiademi/hatom-invoice-task/internal/domain/entity"

// ServiceRepository define el puerto de persistencia para el catálogo de servicios.
type ServiceRepository interface {
	Create(service *entity.Service) error
	// FindByName devuelve las entradas con ese nombre exacto ordenadas por
	// fecha de creación ascendente: ante duplicados, la primera (más antigua) gana.
	FindByName(name string) ([]*entity.Service, error)
	FindByID(id string) (*entity.Service, error)
	FindAll() ([]*entity.Service, error)
	Save(service *entity.Service) error
	DeleteByID(id string) error
}
