package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oltiademi/hatom-invoice-task/internal/application/dto"
	"github.com/oltiademi/hatom-invoice-task/internal/domain"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente de forma explícita (valida y rechaza businessId duplicado).
func (uc *ClientUseCase) Create(in dto.ClientPayload) (*dto.ClientResponse, error) {
	if err := ValidateClientPayload(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByBusinessID(in.UniqueBusinessID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: uniqueBusinessId %s", domain.ErrDuplicate, in.UniqueBusinessID)
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
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// FindAll lista todos los clientes.
func (uc *ClientUseCase) FindAll() ([]*dto.ClientResponse, error) {
	list, err := uc.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// FindByBusinessID obtiene un cliente por su identificador de negocio.
func (uc *ClientUseCase) FindByBusinessID(businessID string) (*dto.ClientResponse, error) {
	client, err := uc.repo.FindByBusinessID(businessID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, businessID)
	}
	return toClientResponse(client), nil
}

// Update aplica un parche campo a campo. El uniqueBusinessId no se parchea
// (es la identidad externa del cliente).
func (uc *ClientUseCase) Update(businessID string, patch dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.FindByBusinessID(businessID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, businessID)
	}
	if patch.Name != nil {
		if len(*patch.Name) < 3 {
			return nil, fmt.Errorf("%w: name demasiado corto", domain.ErrInvalidInput)
		}
		client.Name = *patch.Name
	}
	if patch.Company != nil {
		client.Company = *patch.Company
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	if patch.Country != nil {
		client.Country = *patch.Country
	}
	if patch.City != nil {
		client.City = *patch.City
	}
	if patch.ZipCode != nil {
		if !ValidZipCode(*patch.ZipCode) {
			return nil, fmt.Errorf("%w: zipCode %q no es válido", domain.ErrInvalidInput, *patch.ZipCode)
		}
		client.ZipCode = *patch.ZipCode
	}
	if patch.PhoneNumber != nil {
		client.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		if !ValidEmail(*patch.Email) {
			return nil, fmt.Errorf("%w: email %q no es válido", domain.ErrInvalidInput, *patch.Email)
		}
		client.Email = *patch.Email
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Save(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// DeleteByBusinessID elimina un cliente. Las facturas existentes conservan su
// referencia: no hay borrado en cascada.
func (uc *ClientUseCase) DeleteByBusinessID(businessID string) error {
	client, err := uc.repo.FindByBusinessID(businessID)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, businessID)
	}
	return uc.repo.DeleteByBusinessID(businessID)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		Company:          c.Company,
		Address:          c.Address,
		Country:          c.Country,
		City:             c.City,
		ZipCode:          c.ZipCode,
		PhoneNumber:      c.PhoneNumber,
		Email:            c.Email,
		UniqueBusinessID: c.UniqueBusinessID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
