package repository

import "github.com/oltiademi/hatom-invoice-task/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
// FindByBusinessID devuelve nil (sin error) cuando el cliente no existe.
type ClientRepository interface {
	Create(client *entity.Client) error
	FindByBusinessID(businessID string) (*entity.Client, error)
	FindAll() ([]*entity.Client, error)
	Save(client *entity.Client) error
	DeleteByBusinessID(businessID string) error
}
